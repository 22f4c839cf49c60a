package card

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts used to draw a card.
type Fonts struct {
	Regular *opentype.Font
	Bold    *opentype.Font
}

// GoFonts returns the Go fonts. They cover latin scripts and the currency
// symbols, but not CJK: use LoadFonts for those.
func GoFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("cannot parse go regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("cannot parse go bold font: %w", err)
	}
	return &Fonts{Regular: regular, Bold: bold}, nil
}

// LoadFonts reads a TrueType or OpenType font (or the first font of a
// collection) used for both regular and bold texts.
func LoadFonts(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read font %q: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		c, cerr := opentype.ParseCollection(data)
		if cerr != nil {
			return nil, fmt.Errorf("cannot parse font %q: %w", path, err)
		}
		if f, err = c.Font(0); err != nil {
			return nil, fmt.Errorf("cannot read the first font of %q: %w", path, err)
		}
	}
	return &Fonts{Regular: f, Bold: f}, nil
}
