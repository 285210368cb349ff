// Package stream owns posy's line protocol: parsing design and stem lines,
// driving a two-phase session against the warehouse, and formatting the
// bundles that fall out.
package stream

import (
	"fmt"
	"regexp"
	"strconv"

	"posy/internal/botany"
	"posy/internal/design"
)

// Parser tokenizes design and stem lines. The patterns are compiled once at
// construction and travel with the Parser value; there is no package-level
// pattern state.
type Parser struct {
	designLine *regexp.Regexp
	stemGroups *regexp.Regexp
	stemLine   *regexp.Regexp
}

// NewParser compiles the line patterns.
func NewParser() *Parser {
	return &Parser{
		designLine: regexp.MustCompile(`^([A-Z])([SL])((?:[0-9]+[a-z])*)([0-9]+)$`),
		stemGroups: regexp.MustCompile(`([0-9]+)([a-z])`),
		stemLine:   regexp.MustCompile(`^([a-z])([SL])$`),
	}
}

// ParseDesign parses a design line such as "AL8d10r5t30": name, size marker,
// one or more <max><species> groups, and the required total.
func (p *Parser) ParseDesign(line string) (*design.Design, error) {
	m := p.designLine.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("malformed design line %q", line)
	}
	size, err := botany.SizeFromMarker(m[2][0])
	if err != nil {
		return nil, fmt.Errorf("design line %q: %w", line, err)
	}
	total, err := strconv.Atoi(m[4])
	if err != nil {
		return nil, fmt.Errorf("design line %q: bad total: %w", line, err)
	}

	var picks []design.SpeciesMax
	for _, g := range p.stemGroups.FindAllStringSubmatch(m[3], -1) {
		max, err := strconv.Atoi(g[1])
		if err != nil {
			return nil, fmt.Errorf("design line %q: bad species max: %w", line, err)
		}
		s, err := botany.SpeciesFromLetter(g[2][0])
		if err != nil {
			return nil, fmt.Errorf("design line %q: %w", line, err)
		}
		picks = append(picks, design.SpeciesMax{Species: s, Max: max})
	}

	d, err := design.New(m[1][0], size, picks, total)
	if err != nil {
		return nil, fmt.Errorf("design line %q: %w", line, err)
	}
	return d, nil
}

// ParseStem parses a stem line such as "rL": species letter then size marker.
func (p *Parser) ParseStem(line string) (botany.Species, botany.Size, error) {
	m := p.stemLine.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, fmt.Errorf("malformed stem line %q", line)
	}
	s, err := botany.SpeciesFromLetter(m[1][0])
	if err != nil {
		return 0, 0, fmt.Errorf("stem line %q: %w", line, err)
	}
	size, err := botany.SizeFromMarker(m[2][0])
	if err != nil {
		return 0, 0, fmt.Errorf("stem line %q: %w", line, err)
	}
	return s, size, nil
}
