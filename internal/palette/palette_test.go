package palette

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/assets"
	"github.com/robalobadob/mastermind/internal/game"
)

func TestEmbeddedPalette(t *testing.T) {
	b, err := assets.Palette()
	require.NoError(t, err)
	p, err := Parse(b)
	require.NoError(t, err)

	num, ok := p.Lookup("numeric")
	require.True(t, ok)
	assert.Equal(t, game.KindNumeric, num.Kind())
	assert.Equal(t, []game.Symbol{"1", "2", "3", "4", "5", "6"}, num.Symbols())

	col, ok := p.Lookup("Colors")
	require.True(t, ok)
	assert.Equal(t, []game.Symbol{"Red", "Blue", "Green", "Yellow", "Purple", "Orange"}, col.Symbols())

	def, ok := p.Lookup("")
	require.True(t, ok)
	assert.Equal(t, game.KindNumeric, def.Kind())

	_, ok = p.Lookup("emoji")
	assert.False(t, ok)

	hex, ok := p.Swatch("yellow")
	require.True(t, ok)
	assert.Equal(t, "#FFD700", hex)

	assert.Equal(t, []string{"colors", "numeric"}, p.Names())
}

func TestDescribe(t *testing.T) {
	p, err := Parse([]byte(`
[numeric]
min = 0
max = 3

[[colors]]
name = "Black"
hex = "#000000"

[[colors]]
name = "White"
hex = "#ffffff"
`))
	require.NoError(t, err)

	d := p.Describe()
	require.Len(t, d, 2)
	assert.Equal(t, "colors", d[0].Name)
	assert.Equal(t, map[string]string{"Black": "#000000", "White": "#FFFFFF"}, d[0].Swatches)
	assert.Equal(t, "numeric", d[1].Name)
	assert.Equal(t, []game.Symbol{"0", "1", "2", "3"}, d[1].Symbols)
	assert.Nil(t, d[1].Swatches)
}

func TestParseRejectsInvalidPalettes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad range", "[numeric]\nmin = 6\nmax = 1\n[[colors]]\nname = \"A\"\nhex = \"#000000\"\n[[colors]]\nname = \"B\"\nhex = \"#000000\"\n"},
		{"one color", "[numeric]\nmin = 1\nmax = 6\n[[colors]]\nname = \"A\"\nhex = \"#000000\"\n"},
		{"bad hex", "[numeric]\nmin = 1\nmax = 6\n[[colors]]\nname = \"A\"\nhex = \"red\"\n[[colors]]\nname = \"B\"\nhex = \"#000000\"\n"},
		{"duplicate names", "[numeric]\nmin = 1\nmax = 6\n[[colors]]\nname = \"Red\"\nhex = \"#FF0000\"\n[[colors]]\nname = \"red\"\nhex = \"#FF0000\"\n"},
		{"unknown field", "[numeric]\nmin = 1\nmax = 6\nstep = 2\n"},
		{"not toml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[numeric]
min = 1
max = 8

[[colors]]
name = "Cyan"
hex = "#00FFFF"

[[colors]]
name = "Magenta"
hex = "#FF00FF"
`), 0o600))

	p, err := LoadFile(path)
	require.NoError(t, err)
	num, _ := p.Lookup(Numeric)
	assert.Equal(t, 8, num.Size())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
