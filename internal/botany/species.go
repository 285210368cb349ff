// Package botany defines the species alphabet, size classes, and the
// fixed-width stem vector that the rest of posy does its counting with.
package botany

import "fmt"

// NumSpecies is the size of the species alphabet ('a' through 'z').
const NumSpecies = 26

// Species identifies one of the 26 stem species, 0 for 'a' up to 25 for 'z'.
type Species uint8

// SpeciesFromLetter maps a lowercase species letter to its Species index.
func SpeciesFromLetter(letter byte) (Species, error) {
	if letter < 'a' || letter > 'z' {
		return 0, fmt.Errorf("invalid species letter %q", string(letter))
	}
	return Species(letter - 'a'), nil
}

// Letter returns the lowercase letter for this species.
func (s Species) Letter() byte {
	return 'a' + byte(s)
}

func (s Species) String() string {
	return string(s.Letter())
}

// Size is a stem/design size class. Designs only consume stems of their own
// size class; the two classes never share inventory.
type Size uint8

const (
	SizeSmall Size = iota
	SizeLarge

	// NumSizes is the number of size classes.
	NumSizes = 2
)

// SizeFromMarker parses the single-letter size marker used on the wire.
func SizeFromMarker(marker byte) (Size, error) {
	switch marker {
	case 'S':
		return SizeSmall, nil
	case 'L':
		return SizeLarge, nil
	default:
		return 0, fmt.Errorf("invalid size marker %q", string(marker))
	}
}

// Marker returns the single-letter wire marker for this size class.
func (z Size) Marker() byte {
	if z == SizeLarge {
		return 'L'
	}
	return 'S'
}

func (z Size) String() string {
	return string(z.Marker())
}
