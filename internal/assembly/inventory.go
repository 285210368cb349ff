// Package assembly is the matching engine: it tracks per-size stem stock and
// greedily completes registered designs as stems arrive, one bundle at most
// per arrival.
package assembly

import (
	"sort"

	"posy/internal/botany"
	"posy/internal/design"
)

// Bundle is the result of one successful match: the design that completed and
// the exact stems withdrawn from stock for it. Stems.Sum() always equals the
// design's required total.
type Bundle struct {
	Name  byte
	Size  botany.Size
	Stems botany.StemVector
}

// Inventory holds the stock and candidate designs for one size class.
// It is not safe for concurrent use; arrivals are processed one at a time.
type Inventory struct {
	size   botany.Size
	onHand botany.StemVector

	// designs in registration order. Entries are never removed; a design
	// stays eligible and can match any number of times.
	designs []*design.Design

	// bySpecies[s] lists indices into designs for every design naming
	// species s, sorted by Preprocess so cheaper designs are tried first.
	bySpecies [botany.NumSpecies][]int

	// maxPerStem[s] is the largest max any design has for species s. Once
	// on-hand stock for s exceeds it, an arrival of s cannot complete
	// anything it could not already complete.
	maxPerStem botany.StemVector
}

// NewInventory creates an empty inventory for one size class.
func NewInventory(size botany.Size) *Inventory {
	return &Inventory{size: size}
}

// Size returns the size class this inventory serves.
func (inv *Inventory) Size() botany.Size {
	return inv.size
}

// OnHand returns a copy of the current stock vector.
func (inv *Inventory) OnHand() botany.StemVector {
	return inv.onHand
}

// Designs returns the number of registered designs.
func (inv *Inventory) Designs() int {
	return len(inv.designs)
}

// Register adds a design to the candidate set and reports whether it was
// accepted. Designs whose normalized bounds cannot reach the required total
// are dropped here and never considered again.
func (inv *Inventory) Register(d *design.Design) bool {
	if !d.Satisfiable() {
		return false
	}
	pos := len(inv.designs)
	inv.designs = append(inv.designs, d)
	for s := botany.Species(0); s < botany.NumSpecies; s++ {
		max := d.Max.Get(s)
		if max == 0 {
			continue
		}
		inv.bySpecies[s] = append(inv.bySpecies[s], pos)
		if max > inv.maxPerStem.Get(s) {
			inv.maxPerStem.Set(s, max)
		}
	}
	return true
}

// Preprocess orders each species' candidate list by ascending required
// total, ties kept in registration order, so an arrival tries the smallest
// completable design first. Call it after registration and before the first
// arrival; calling it again is harmless.
func (inv *Inventory) Preprocess() {
	for s := range inv.bySpecies {
		idx := inv.bySpecies[s]
		sort.SliceStable(idx, func(i, j int) bool {
			return inv.designs[idx[i]].Total < inv.designs[idx[j]].Total
		})
	}
}

// Arrive records one stem of the given species and tries to complete a
// design with the updated stock. It returns the assembled bundle, or nil if
// nothing completed and the stem simply accumulated.
func (inv *Inventory) Arrive(s botany.Species) *Bundle {
	inv.onHand.Add(s, 1)

	// No design can use this many stems of s, so nothing that was not
	// already completable has become completable.
	if inv.onHand.Get(s) > inv.maxPerStem.Get(s) {
		return nil
	}

	for _, pos := range inv.bySpecies[s] {
		d := inv.designs[pos]

		grabbed := inv.onHand.Min(d.Max)
		if grabbed.Sum() < d.Total {
			continue
		}
		if grabbed.AnyLess(d.Min) {
			continue
		}

		withdrawn := inv.trim(grabbed, d)
		inv.onHand = inv.onHand.Sub(withdrawn)
		return &Bundle{Name: d.Name, Size: inv.size, Stems: withdrawn}
	}
	return nil
}

// trim returns surplus stems from a satisfiable grab until it holds exactly
// the design's required total. Surplus comes back from the lowest species
// index that has room above its minimum; the ordering is a stable tie-break
// with no further meaning.
func (inv *Inventory) trim(grabbed botany.StemVector, d *design.Design) botany.StemVector {
	excess := grabbed.Sum() - d.Total
	for s := botany.Species(0); s < botany.NumSpecies && excess > 0; s++ {
		room := grabbed.Get(s) - d.Min.Get(s)
		if room <= 0 {
			continue
		}
		give := room
		if excess < give {
			give = excess
		}
		grabbed.Add(s, -give)
		excess -= give
	}
	return grabbed
}
