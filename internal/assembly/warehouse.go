package assembly

import (
	"posy/internal/botany"
	"posy/internal/design"
)

// Warehouse owns one inventory per size class and routes designs and stems
// to the right one. It carries no state of its own beyond the inventories.
type Warehouse struct {
	lines [botany.NumSizes]*Inventory
}

// NewWarehouse creates a warehouse with an empty inventory per size class.
func NewWarehouse() *Warehouse {
	w := &Warehouse{}
	w.lines[botany.SizeSmall] = NewInventory(botany.SizeSmall)
	w.lines[botany.SizeLarge] = NewInventory(botany.SizeLarge)
	return w
}

// RegisterDesign routes a design to the inventory of its size class and
// reports whether it was accepted there.
func (w *Warehouse) RegisterDesign(d *design.Design) bool {
	return w.lines[d.Size].Register(d)
}

// Preprocess readies both inventories for arrivals. Call it once, after all
// designs are registered.
func (w *Warehouse) Preprocess() {
	for _, inv := range w.lines {
		inv.Preprocess()
	}
}

// AddStem records one stem arrival in the inventory of its size class and
// returns the bundle it completed, if any.
func (w *Warehouse) AddStem(s botany.Species, size botany.Size) *Bundle {
	return w.lines[size].Arrive(s)
}

// Inventory exposes the inventory for one size class, mainly for inspection
// in tests and the check command.
func (w *Warehouse) Inventory(size botany.Size) *Inventory {
	return w.lines[size]
}
