package card

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
)

// Rasterizer turns a layout into a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, l *Layout) (image.Image, error)
}

// Gradient colors, from the top-left to the bottom-right corner.
var (
	goldenrod = color.NRGBA{0xda, 0xa5, 0x20, 0xff}
	gold      = color.NRGBA{0xff, 0xd7, 0x00, 0xff}
)

// Painter is the default Rasterizer: a gold gradient card with white text and
// a transparent background outside the rounded corners.
type Painter struct{}

func (Painter) Rasterize(ctx context.Context, l *Layout) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	w, h := float64(l.Width), float64(l.Height)
	for y := 0; y < l.Height; y++ {
		if y%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for x := 0; x < l.Width; x++ {
			a := coverage(float64(x)+0.5, float64(y)+0.5, w, h, float64(l.Radius))
			if a == 0 {
				continue
			}
			t := (float64(x)/w + float64(y)/h) / 2
			c := lerp(goldenrod, gold, t)
			c.A = uint8(math.Round(a * 255))
			img.Set(x, y, c)
		}
	}

	drawWallet(img, l.Icon, l.Scale)

	for _, line := range l.Lines {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.NRGBA{0xff, 0xff, 0xff, line.Alpha}),
			Face: line.Face,
			Dot:  line.Dot,
		}
		d.DrawString(line.Text)
	}
	return img, nil
}

// coverage returns how much of the pixel centered on (x,y) is inside the
// rounded rectangle of size w*h, anti-aliased over one pixel.
func coverage(x, y, w, h, r float64) float64 {
	cx := math.Max(r, math.Min(x, w-r))
	cy := math.Max(r, math.Min(y, h-r))
	dx, dy := x-cx, y-cy
	if dx == 0 && dy == 0 {
		return 1
	}
	d := math.Sqrt(dx*dx+dy*dy) - r
	return math.Max(0, math.Min(1, 0.5-d))
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(u, v uint8) uint8 { return uint8(math.Round(float64(u) + (float64(v)-float64(u))*t)) }
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// drawWallet draws a simple white wallet glyph in r.
func drawWallet(img draw.Image, r image.Rectangle, scale float64) {
	white := image.NewUniform(color.White)
	stroke := int(math.Max(1, math.Round(2.5*scale)))
	body := image.Rect(r.Min.X, r.Min.Y+r.Dy()/5, r.Max.X, r.Max.Y-r.Dy()/10)

	// outline
	for _, side := range []image.Rectangle{
		image.Rect(body.Min.X, body.Min.Y, body.Max.X, body.Min.Y+stroke),
		image.Rect(body.Min.X, body.Max.Y-stroke, body.Max.X, body.Max.Y),
		image.Rect(body.Min.X, body.Min.Y, body.Min.X+stroke, body.Max.Y),
		image.Rect(body.Max.X-stroke, body.Min.Y, body.Max.X, body.Max.Y),
	} {
		draw.Draw(img, side, white, image.Point{}, draw.Over)
	}
	// flap
	flap := image.Rect(body.Min.X+body.Dx()/8, r.Min.Y+r.Dy()/20, body.Max.X-body.Dx()/4, body.Min.Y)
	draw.Draw(img, image.Rect(flap.Min.X, flap.Max.Y-stroke, flap.Max.X, flap.Max.Y), white, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(flap.Min.X, flap.Min.Y, flap.Max.X, flap.Min.Y+stroke), white, image.Point{}, draw.Over)
	// clasp
	clasp := image.Rect(body.Max.X-body.Dx()/3, body.Min.Y+body.Dy()*3/8, body.Max.X, body.Max.Y-body.Dy()*3/8)
	draw.Draw(img, clasp, white, image.Point{}, draw.Over)
}
