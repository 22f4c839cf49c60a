package renderer

import (
	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/card"
)

// Book is the view of the asset list.
// Amounts are already formatted in the book currency.
type Book struct {
	Title  string `json:"title"`
	Total  string `json:"total"`
	Assets []Row  `json:"assets"`
}

// Row is one asset of the list, in insertion order.
type Row struct {
	ID     string `json:"id"`
	Icon   string `json:"icon"`
	Image  string `json:"image,omitempty"` // custom icon data URI
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Icon is one preset icon.
type Icon struct {
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// Card is the caption of an exported summary card.
type Card struct {
	Title  string `json:"title"`
	Total  string `json:"total"`
	File   string `json:"file,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Hint   string `json:"hint"`
}

// NewBook creates the view of assets whose sum is total.
func NewBook(assets []qianbao.Asset, total qianbao.Money) *Book {
	currency := total.Currency()
	b := &Book{
		Title:  card.DefaultTitle(currency),
		Assets: make([]Row, 0, len(assets)),
	}
	for _, a := range assets {
		icon := a.Icon
		if icon.IsZero() {
			icon = qianbao.DefaultIcon()
		}
		b.Assets = append(b.Assets, Row{
			ID:     a.ID,
			Icon:   icon.String(),
			Image:  icon.Custom(),
			Name:   a.Name,
			Amount: a.Money(currency).String(),
		})
	}
	b.Total = total.String()
	return b
}

// NewIcons creates the view of the preset icons.
func NewIcons() []Icon {
	var icons []Icon
	for _, p := range qianbao.Presets() {
		icons = append(icons, Icon{Symbol: p.Symbol, Label: p.Label})
	}
	return icons
}

// NewCard creates the caption of c exported as img and saved to file.
// file may be empty when the image was not written to disk.
func NewCard(c card.Card, img *card.Image, file string) *Card {
	v := &Card{
		Title: c.Title,
		Total: c.Total.String(),
		Hint:  card.SaveHint,
	}
	if file != "" && img != nil {
		v.File = file
		v.Width = img.Width
		v.Height = img.Height
	}
	return v
}
