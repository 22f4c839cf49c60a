package card

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultScale is the pixel density of exported cards.
const DefaultScale = 2

// Image is an exported card.
type Image struct {
	PNG           []byte
	Width, Height int
}

// DataURI returns the image as an embeddable data URI.
func (i *Image) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(i.PNG)
}

// Exporter produces card images.
type Exporter struct {
	Stage      *Stage
	Rasterizer Rasterizer
}

// NewExporter returns an exporter drawing with fonts at scale, or the Go fonts
// at DefaultScale when they are nil or zero.
func NewExporter(fonts *Fonts, scale float64) (*Exporter, error) {
	if fonts == nil {
		var err error
		if fonts, err = GoFonts(); err != nil {
			return nil, err
		}
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Exporter{Stage: NewStage(fonts, scale), Rasterizer: Painter{}}, nil
}

// Export renders c to a PNG image.
//
// The element mounted for c is removed before Export returns, on success and
// on failure. ctx bounds the whole export, including the wait for the layout.
func (x *Exporter) Export(ctx context.Context, c Card) (*Image, error) {
	start := time.Now()
	el := x.Stage.Mount(c)
	defer el.Unmount()

	select {
	case <-el.Ready():
	case <-ctx.Done():
		return nil, fmt.Errorf("card layout did not complete: %w", ctx.Err())
	}
	l, err := el.Layout()
	if err != nil {
		return nil, fmt.Errorf("card layout failed: %w", err)
	}

	bitmap, err := x.Rasterizer.Rasterize(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("card rasterization failed: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, bitmap); err != nil {
		return nil, fmt.Errorf("card encoding failed: %w", err)
	}
	b := bitmap.Bounds()
	log.WithFields(log.Fields{
		"total":    c.Total.String(),
		"size":     fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"bytes":    buf.Len(),
		"duration": time.Since(start),
	}).Debug("card exported")
	return &Image{PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}
