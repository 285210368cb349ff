// Package design models the bundle recipes that stems are assembled against.
// A Design is immutable once constructed; construction runs a normalization
// pass that tightens the per-species bounds without changing which bundles
// can satisfy the recipe.
package design

import (
	"fmt"
	"strings"

	"posy/internal/botany"
)

// SpeciesMax is one parsed "<max><species>" group from a design line.
type SpeciesMax struct {
	Species botany.Species
	Max     int
}

// Design is a fixed recipe: a required total stem count plus per-species
// minimum and maximum counts. Min is nonzero exactly for the species the
// design names. Designs are matched only against stems of their own size.
type Design struct {
	Name  byte
	Size  botany.Size
	Total int
	Min   botany.StemVector
	Max   botany.StemVector
}

// New builds a Design from parsed parts and normalizes its bounds.
// A species listed more than once keeps the last max given for it, matching
// the tokenizer's last-wins behavior.
func New(name byte, size botany.Size, picks []SpeciesMax, total int) (*Design, error) {
	if name < 'A' || name > 'Z' {
		return nil, fmt.Errorf("invalid design name %q", string(name))
	}
	if total < 0 {
		return nil, fmt.Errorf("design %s: negative total %d", string(name), total)
	}
	d := &Design{Name: name, Size: size, Total: total}
	for _, pick := range picks {
		if pick.Max < 0 {
			return nil, fmt.Errorf("design %s: negative max for species %s", string(name), pick.Species)
		}
		d.Min.Set(pick.Species, 1)
		d.Max.Set(pick.Species, pick.Max)
	}
	d.normalize()
	return d, nil
}

// normalize tightens the bounds in two passes. Both passes only shrink the
// feasible range, never the set of valid bundles, so running it again on an
// already-normalized design is a no-op.
//
// Pass 1 caps each named species' max at 1 + total - distinct: every other
// named species must contribute at least one stem, so no single species can
// fill more of the bundle than that.
//
// Pass 2 raises each named species' min to max(1, max[s] - sum of the other
// species' max): the least the species must contribute once every other
// species is pushed to its ceiling.
func (d *Design) normalize() {
	distinct := 0
	for s := botany.Species(0); s < botany.NumSpecies; s++ {
		if d.Min.Get(s) > 0 {
			distinct++
		}
	}
	if distinct == 0 {
		return
	}

	ceiling := 1 + d.Total - distinct
	if ceiling < 0 {
		ceiling = 0
	}
	for s := botany.Species(0); s < botany.NumSpecies; s++ {
		if d.Min.Get(s) > 0 && d.Max.Get(s) > ceiling {
			d.Max.Set(s, ceiling)
		}
	}

	sumMax := d.Max.Sum()
	for s := botany.Species(0); s < botany.NumSpecies; s++ {
		if d.Min.Get(s) == 0 {
			continue
		}
		least := d.Max.Get(s) - (sumMax - d.Max.Get(s))
		if least < 1 {
			least = 1
		}
		d.Min.Set(s, least)
	}
}

// Satisfiable reports whether any bundle at all can complete this design:
// the required total has to fit between the sum of the minimums and the sum
// of the maximums. Registration discards designs for which this is false.
func (d *Design) Satisfiable() bool {
	return d.Total >= d.Min.Sum() && d.Total <= d.Max.Sum()
}

// String renders the design in its wire shape, e.g. "AL8d10r30".
func (d *Design) String() string {
	var b strings.Builder
	b.WriteByte(d.Name)
	b.WriteByte(d.Size.Marker())
	for s := botany.Species(0); s < botany.NumSpecies; s++ {
		if max := d.Max.Get(s); max > 0 {
			fmt.Fprintf(&b, "%d%s", max, s)
		}
	}
	fmt.Fprintf(&b, "%d", d.Total)
	return b.String()
}
