package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posy/internal/botany"
)

func TestParseDesign(t *testing.T) {
	p := NewParser()

	t.Run("multi species line", func(t *testing.T) {
		d, err := p.ParseDesign("AL8d10r5t30")
		require.NoError(t, err)

		assert.Equal(t, byte('A'), d.Name)
		assert.Equal(t, botany.SizeLarge, d.Size)
		assert.Equal(t, 30, d.Total)

		dd, _ := botany.SpeciesFromLetter('d')
		rr, _ := botany.SpeciesFromLetter('r')
		tt, _ := botany.SpeciesFromLetter('t')
		assert.Equal(t, 8, d.Max.Get(dd))
		assert.Equal(t, 10, d.Max.Get(rr))
		assert.Equal(t, 5, d.Max.Get(tt))
	})

	t.Run("single species line", func(t *testing.T) {
		d, err := p.ParseDesign("AS3a3")
		require.NoError(t, err)

		a, _ := botany.SpeciesFromLetter('a')
		assert.Equal(t, byte('A'), d.Name)
		assert.Equal(t, botany.SizeSmall, d.Size)
		assert.Equal(t, 3, d.Total)
		assert.Equal(t, 3, d.Max.Get(a))
	})

	t.Run("multi digit counts split from the total", func(t *testing.T) {
		d, err := p.ParseDesign("BS12a15")
		require.NoError(t, err)

		a, _ := botany.SpeciesFromLetter('a')
		assert.Equal(t, 12, d.Max.Get(a))
		assert.Equal(t, 15, d.Total)
	})

	t.Run("malformed lines", func(t *testing.T) {
		for _, line := range []string{
			"",
			"AS",          // no total
			"aS3a3",       // lowercase name
			"AX3a3",       // bad size marker
			"AS3A3",       // uppercase species
			"AS3a3 ",      // trailing space
			"AS 3a3",      // embedded space
			"3aAS3",       // scrambled
		} {
			_, err := p.ParseDesign(line)
			assert.Error(t, err, "line %q", line)
		}
	})
}

func TestParseStem(t *testing.T) {
	p := NewParser()

	t.Run("valid stems", func(t *testing.T) {
		s, size, err := p.ParseStem("rL")
		require.NoError(t, err)
		assert.Equal(t, byte('r'), s.Letter())
		assert.Equal(t, botany.SizeLarge, size)

		s, size, err = p.ParseStem("aS")
		require.NoError(t, err)
		assert.Equal(t, byte('a'), s.Letter())
		assert.Equal(t, botany.SizeSmall, size)
	})

	t.Run("malformed stems", func(t *testing.T) {
		for _, line := range []string{"", "a", "S", "Sa", "aM", "AL", "aLL", " aL"} {
			_, _, err := p.ParseStem(line)
			assert.Error(t, err, "line %q", line)
		}
	})
}
