package botany

// StemVector holds one non-negative count per species. It is the unit of
// arithmetic for the whole matching engine: design bounds, on-hand stock,
// and withdrawn bundles are all StemVectors.
//
// The zero value is an empty vector. Counts are addressed through Get/Set/Add
// so callers never depend on the backing representation.
type StemVector [NumSpecies]int

// Get returns the count for the given species.
func (v *StemVector) Get(s Species) int {
	return v[s]
}

// Set replaces the count for the given species.
func (v *StemVector) Set(s Species, n int) {
	v[s] = n
}

// Add increments the count for the given species by n.
func (v *StemVector) Add(s Species, n int) {
	v[s] += n
}

// Sum returns the total count across all species.
func (v *StemVector) Sum() int {
	total := 0
	for _, n := range v {
		total += n
	}
	return total
}

// Min returns the elementwise minimum of v and o.
func (v StemVector) Min(o StemVector) StemVector {
	var out StemVector
	for i := range v {
		if v[i] < o[i] {
			out[i] = v[i]
		} else {
			out[i] = o[i]
		}
	}
	return out
}

// AnyLess reports whether any species count in v is strictly below the
// corresponding count in o.
func (v *StemVector) AnyLess(o StemVector) bool {
	for i := range v {
		if v[i] < o[i] {
			return true
		}
	}
	return false
}

// Sub returns v minus o elementwise. The caller guarantees o never exceeds v
// in any slot; the matching engine establishes that by grabbing with Min first.
func (v StemVector) Sub(o StemVector) StemVector {
	var out StemVector
	for i := range v {
		out[i] = v[i] - o[i]
	}
	return out
}

// IsZero reports whether every species count is zero.
func (v StemVector) IsZero() bool {
	for _, n := range v {
		if n != 0 {
			return false
		}
	}
	return true
}
