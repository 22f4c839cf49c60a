package qianbao

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// ErrAssetNotFound is returned when an id does not match any asset.
var ErrAssetNotFound = errors.New("asset not found")

// Book represents the collection of assets.
//
// In a Book assets are always in insertion order, and ids are unique.
type Book struct {
	assets []Asset
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{assets: make([]Asset, 0)}
}

// Len returns the number of assets.
func (b *Book) Len() int { return len(b.assets) }

// Assets returns a copy of the assets in insertion order.
func (b *Book) Assets() []Asset { return slices.Clone(b.assets) }

// All iterates over the assets in insertion order.
func (b *Book) All() iter.Seq[Asset] {
	return func(yield func(Asset) bool) {
		for _, a := range b.assets {
			if !yield(a) {
				return
			}
		}
	}
}

// Get returns the asset with this id.
func (b *Book) Get(id string) (Asset, bool) {
	i := b.index(id)
	if i < 0 {
		return Asset{}, false
	}
	return b.assets[i], true
}

func (b *Book) index(id string) int {
	return slices.IndexFunc(b.assets, func(a Asset) bool { return a.ID == id })
}

// Append appends an asset at the end of the book.
func (b *Book) Append(a Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if b.index(a.ID) >= 0 {
		return fmt.Errorf("asset %q is already in the book", a.ID)
	}
	b.assets = append(b.assets, a)
	return nil
}

// Replace replaces the asset with the same id, keeping its position.
func (b *Book) Replace(a Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	i := b.index(a.ID)
	if i < 0 {
		return fmt.Errorf("cannot replace %q: %w", a.ID, ErrAssetNotFound)
	}
	b.assets[i] = a
	return nil
}

// Total returns the sum of all asset amounts.
//
// It is computed on every call.
func (b *Book) Total(currency string) Money {
	sum := decimal.Zero
	for _, a := range b.assets {
		sum = sum.Add(a.Amount)
	}
	return M(sum, currency)
}
