// Package card renders the summary card shared by users: a gold card showing
// the total of their assets, exported as a PNG image.
//
// A card is first mounted on an off-screen Stage where its layout is computed
// in the background. Export waits for the layout to signal completion, then
// rasterizes it and always unmounts the element, whatever the outcome.
package card

import (
	"fmt"

	"github.com/etnz/qianbao"
)

// DefaultFooter is printed at the bottom of every card.
const DefaultFooter = "Qianbao - your asset assistant"

// SaveHint tells users how to keep the exported image.
const SaveHint = "Long-press the image to save it"

// Card is the content of a summary card.
type Card struct {
	Total  qianbao.Money
	Title  string
	Footer string
}

// New returns the card for total with the default texts.
func New(total qianbao.Money) Card {
	return Card{
		Total:  total,
		Title:  DefaultTitle(total.Currency()),
		Footer: DefaultFooter,
	}
}

// DefaultTitle returns the title of a card in currency.
func DefaultTitle(currency string) string {
	return fmt.Sprintf("Total assets (%s)", currency)
}
