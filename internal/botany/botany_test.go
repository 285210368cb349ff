package botany

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeciesFromLetter(t *testing.T) {
	t.Run("maps the full alphabet", func(t *testing.T) {
		for letter := byte('a'); letter <= 'z'; letter++ {
			s, err := SpeciesFromLetter(letter)
			require.NoError(t, err)
			assert.Equal(t, letter, s.Letter())
		}
	})

	t.Run("rejects non-lowercase input", func(t *testing.T) {
		for _, letter := range []byte{'A', 'Z', '0', ' ', '{', '`'} {
			_, err := SpeciesFromLetter(letter)
			assert.Error(t, err, "letter %q", string(letter))
		}
	})
}

func TestSizeFromMarker(t *testing.T) {
	small, err := SizeFromMarker('S')
	require.NoError(t, err)
	assert.Equal(t, SizeSmall, small)

	large, err := SizeFromMarker('L')
	require.NoError(t, err)
	assert.Equal(t, SizeLarge, large)

	_, err = SizeFromMarker('M')
	assert.Error(t, err)

	assert.Equal(t, "S", SizeSmall.String())
	assert.Equal(t, "L", SizeLarge.String())
}

func TestStemVectorAccessors(t *testing.T) {
	var v StemVector
	assert.True(t, v.IsZero())

	a, _ := SpeciesFromLetter('a')
	z, _ := SpeciesFromLetter('z')

	v.Set(a, 3)
	v.Add(z, 2)
	v.Add(z, 1)

	assert.Equal(t, 3, v.Get(a))
	assert.Equal(t, 3, v.Get(z))
	assert.Equal(t, 6, v.Sum())
	assert.False(t, v.IsZero())
}

func TestStemVectorMin(t *testing.T) {
	var a, b StemVector
	a.Set(0, 5)
	a.Set(1, 1)
	b.Set(0, 2)
	b.Set(1, 4)

	got := a.Min(b)
	assert.Equal(t, 2, got.Get(0))
	assert.Equal(t, 1, got.Get(1))
	assert.Equal(t, 0, got.Get(2))
}

func TestStemVectorAnyLess(t *testing.T) {
	var have, need StemVector
	need.Set(3, 2)

	assert.True(t, have.AnyLess(need))

	have.Set(3, 2)
	assert.False(t, have.AnyLess(need))

	have.Set(3, 7)
	assert.False(t, have.AnyLess(need))
}

func TestStemVectorSub(t *testing.T) {
	var stock, taken StemVector
	stock.Set(0, 4)
	stock.Set(5, 2)
	taken.Set(0, 3)
	taken.Set(5, 2)

	left := stock.Sub(taken)
	assert.Equal(t, 1, left.Get(0))
	assert.Equal(t, 0, left.Get(5))
	assert.Equal(t, 1, left.Sum())
}
