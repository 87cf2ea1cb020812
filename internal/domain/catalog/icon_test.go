package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profislots/profislots-api/internal/httperr"
)

func TestEveryIconHasGlyph(t *testing.T) {
	seen := map[string]bool{}
	for _, i := range Icons {
		g := i.Glyph()
		require.NotEmpty(t, g, i)
		assert.False(t, seen[g], "duplicate glyph for %s", i)
		seen[g] = true
	}
}

func TestParseIcon(t *testing.T) {
	i, err := ParseIcon(" Nail ")
	require.NoError(t, err)
	assert.Equal(t, IconNail, i)

	i, err = ParseIcon("")
	require.NoError(t, err)
	assert.Equal(t, IconScissors, i)

	_, err = ParseIcon("unicorn")
	assert.True(t, httperr.IsBusiness(err, "invalid_icon"))
}

func TestUnknownIconHasNoGlyph(t *testing.T) {
	assert.Empty(t, Icon("rocket").Glyph())
	assert.False(t, Icon("rocket").Valid())
}
