package card

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Card geometry in CSS pixels, scaled by the pixel density when rasterized.
const (
	contentWidth = 300
	padding      = 32
	radius       = 16
	iconSize     = 36
	iconGap      = 12
	titleSize    = 22
	titleGap     = 8
	amountSize   = 36
	amountMin    = 14
	amountGap    = 20
	footerSize   = 14
	lineHeight   = 1.4
)

// Line is a centered line of text.
type Line struct {
	Text  string
	Face  font.Face
	Dot   fixed.Point26_6 // where drawing starts, on the baseline
	Alpha uint8
}

// Layout is the positioned content of a card, in device pixels.
type Layout struct {
	Width, Height int
	Scale         float64
	Radius        int
	Icon          image.Rectangle
	Lines         []Line
}

// Close releases the font faces.
func (l *Layout) Close() {
	for _, line := range l.Lines {
		line.Face.Close()
	}
}

// px converts CSS pixels to device pixels.
func px(v, scale float64) int { return int(math.Round(v * scale)) }

// layout positions the card content with the given fonts at scale.
func layout(c Card, fonts *Fonts, scale float64) (*Layout, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %v", scale)
	}
	l := &Layout{
		Width:  px(contentWidth+2*padding, scale),
		Scale:  scale,
		Radius: px(radius, scale),
	}
	width := fixed.I(l.Width)
	maxText := fixed.I(px(contentWidth, scale))

	y := float64(padding)
	l.Icon = image.Rect(
		px((contentWidth+2*padding-iconSize)/2.0, scale), px(y, scale),
		px((contentWidth+2*padding+iconSize)/2.0, scale), px(y+iconSize, scale),
	)
	y += iconSize + iconGap

	// add appends a centered line of size CSS pixels starting at y.
	add := func(text string, f *opentype.Font, size float64, alpha uint8) (float64, error) {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size * scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return 0, err
		}
		m := face.Metrics()
		advance := font.MeasureString(face, text)
		height := size * lineHeight
		// center the glyph box vertically in the line box.
		glyphs := float64(m.Ascent+m.Descent) / 64 / scale
		baseline := y + (height-glyphs)/2 + float64(m.Ascent)/64/scale
		l.Lines = append(l.Lines, Line{
			Text:  text,
			Face:  face,
			Dot:   fixed.Point26_6{X: (width - advance) / 2, Y: fixed.I(px(baseline, scale))},
			Alpha: alpha,
		})
		return height, nil
	}

	h, err := add(c.Title, fonts.Regular, titleSize, 0xff)
	if err != nil {
		return nil, err
	}
	y += h + titleGap

	// large totals shrink until they fit the card.
	amount := c.Total.String()
	size := float64(amountSize)
	for size > amountMin {
		face, err := opentype.NewFace(fonts.Bold, &opentype.FaceOptions{Size: size * scale, DPI: 72})
		if err != nil {
			l.Close()
			return nil, err
		}
		fits := font.MeasureString(face, amount) <= maxText
		face.Close()
		if fits {
			break
		}
		size -= 2
	}
	if h, err = add(amount, fonts.Bold, size, 0xff); err != nil {
		l.Close()
		return nil, err
	}
	y += h + amountGap

	if h, err = add(c.Footer, fonts.Regular, footerSize, 0xe6); err != nil {
		l.Close()
		return nil, err
	}
	y += h + padding

	l.Height = px(y, scale)
	return l, nil
}
