// internal/palette/palette.go
//
// Alphabet configuration for the game shells.
//
// Responsibilities:
//   - Decode a palette (numeric range + named colors with swatch hex) from TOML.
//   - Build the game.Alphabet values the shells offer: "numeric" and "colors".
//   - Provide a process-wide default loaded once from env or embedded assets.
//
// Initialization behavior (Init):
//   1. If MASTERMIND_PALETTE_FILE is set, decode that file.
//   2. Otherwise decode the embedded assets/palette.toml.
//
// Constraints:
//   • numeric.min < numeric.max.
//   • At least two colors, names unique ignoring case, hex as #RRGGBB.
package palette

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/robalobadob/mastermind/assets"
	"github.com/robalobadob/mastermind/internal/game"
)

// Alphabet names exposed to players.
const (
	Numeric = "numeric"
	Colors  = "colors"
)

// EnvFile names the variable pointing at an alternative palette file.
const EnvFile = "MASTERMIND_PALETTE_FILE"

var hexRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type fileSchema struct {
	Numeric struct {
		Min int `toml:"min"`
		Max int `toml:"max"`
	} `toml:"numeric"`
	Colors []Color `toml:"colors"`
}

// Color is one named symbol with the hex used to draw its swatch.
type Color struct {
	Name string `toml:"name" json:"name"`
	Hex  string `toml:"hex" json:"hex"`
}

// Palette is a decoded, validated set of alphabets.
type Palette struct {
	alphabets map[string]game.Alphabet
	swatches  map[string]string // lower(name) -> hex
}

// Parse decodes and validates TOML palette data.
func Parse(data []byte) (*Palette, error) {
	var f fileSchema
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode palette: %w", err)
	}

	if f.Numeric.Min >= f.Numeric.Max {
		return nil, fmt.Errorf("palette: numeric range %d..%d needs min < max", f.Numeric.Min, f.Numeric.Max)
	}
	if len(f.Colors) < 2 {
		return nil, errors.New("palette: at least two colors are required")
	}

	p := &Palette{
		alphabets: make(map[string]game.Alphabet, 2),
		swatches:  make(map[string]string, len(f.Colors)),
	}
	names := make([]string, 0, len(f.Colors))
	for _, c := range f.Colors {
		c.Name = strings.TrimSpace(c.Name)
		if !hexRe.MatchString(c.Hex) {
			return nil, fmt.Errorf("palette: color %q has invalid hex %q", c.Name, c.Hex)
		}
		c.Hex = strings.ToUpper(c.Hex)
		names = append(names, c.Name)
		p.swatches[strings.ToLower(c.Name)] = c.Hex
	}

	num, err := game.NumericAlphabet(f.Numeric.Min, f.Numeric.Max)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	col, err := game.NamedAlphabet(names...)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	p.alphabets[Numeric] = num
	p.alphabets[Colors] = col
	return p, nil
}

// LoadFile reads and parses a palette file.
func LoadFile(path string) (*Palette, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open palette %s: %w", path, err)
	}
	return Parse(b)
}

// Lookup returns the alphabet registered under name ("numeric", "colors").
// An empty name selects the numeric alphabet.
func (p *Palette) Lookup(name string) (game.Alphabet, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Numeric
	}
	a, ok := p.alphabets[name]
	return a, ok
}

// Names lists the registered alphabet names, sorted.
func (p *Palette) Names() []string {
	out := make([]string, 0, len(p.alphabets))
	for n := range p.alphabets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Swatch returns the hex color for a named symbol.
func (p *Palette) Swatch(s game.Symbol) (string, bool) {
	h, ok := p.swatches[strings.ToLower(string(s))]
	return h, ok
}

// Description is the API listing of one alphabet.
type Description struct {
	Name     string            `json:"name"`
	Kind     game.Kind         `json:"kind"`
	Symbols  []game.Symbol     `json:"symbols"`
	Swatches map[string]string `json:"swatches,omitempty"`
}

// Describe lists every alphabet with its symbols, colors carrying swatches.
func (p *Palette) Describe() []Description {
	out := make([]Description, 0, len(p.alphabets))
	for _, n := range p.Names() {
		a := p.alphabets[n]
		d := Description{Name: n, Kind: a.Kind(), Symbols: a.Symbols()}
		if a.Kind() == game.KindNamed {
			d.Swatches = make(map[string]string, a.Size())
			for _, s := range a.Symbols() {
				d.Swatches[string(s)], _ = p.Swatch(s)
			}
		}
		out = append(out, d)
	}
	return out
}

var (
	initOnce   sync.Once
	defaultP   *Palette
	initialErr error
)

// Init loads the default palette exactly once.
func Init() error {
	initOnce.Do(func() {
		if path := os.Getenv(EnvFile); path != "" {
			defaultP, initialErr = LoadFile(path)
			return
		}
		b, err := assets.Palette()
		if err != nil {
			initialErr = fmt.Errorf("read embedded palette: %w", err)
			return
		}
		defaultP, initialErr = Parse(b)
	})
	return initialErr
}

// Default returns the palette loaded by Init, loading it if needed.
// It panics if loading failed; call Init first to handle the error.
func Default() *Palette {
	if err := Init(); err != nil {
		panic(err)
	}
	return defaultP
}
