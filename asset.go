package qianbao

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Icon is the picture of an asset: either a preset symbol or a custom image
// encoded as a data URI. It never holds both, the zero value holds none.
type Icon struct {
	preset string
	custom string
}

// PresetIcon returns an icon using a preset symbol.
func PresetIcon(symbol string) Icon { return Icon{preset: symbol} }

// CustomIcon returns an icon using an uploaded image, as a data URI.
func CustomIcon(dataURI string) Icon { return Icon{custom: dataURI} }

func (i Icon) Preset() string { return i.preset }
func (i Icon) Custom() string { return i.custom }
func (i Icon) IsCustom() bool { return i.custom != "" }
func (i Icon) IsZero() bool   { return i.preset == "" && i.custom == "" }

// String returns the preset symbol, or a placeholder for custom images.
func (i Icon) String() string {
	if i.IsCustom() {
		return "[image]"
	}
	return i.preset
}

// Asset is a named monetary item entered by the user.
type Asset struct {
	ID     string
	Name   string
	Amount decimal.Decimal
	Icon   Icon
}

// NewID returns a fresh asset id.
//
// Ids are time ordered UUIDs so two assets created in a row never collide.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}

// Money returns the asset amount in the given currency.
func (a Asset) Money(currency string) Money { return M(a.Amount, currency) }

// Validate checks the record invariants that do not depend on the collection.
func (a Asset) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("missing id")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("asset %q: empty name", a.ID)
	}
	return nil
}

// MarshalJSON writes the record in its persisted shape, amount as a number.
func (a Asset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Append("amount", json.Number(a.Amount.String()))
	w.Optional("icon", a.Icon.preset)
	w.Optional("customIcon", a.Icon.custom)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a persisted record.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var ja struct {
		ID         json.RawMessage `json:"id"`
		Name       string          `json:"name"`
		Amount     decimal.Decimal `json:"amount"`
		Icon       string          `json:"icon"`
		CustomIcon string          `json:"customIcon"`
	}
	if err := json.Unmarshal(data, &ja); err != nil {
		return err
	}
	id, err := decodeID(ja.ID)
	if err != nil {
		return err
	}
	if ja.Icon != "" && ja.CustomIcon != "" {
		return fmt.Errorf("asset %q: both icon and customIcon are set", id)
	}
	*a = Asset{ID: id, Name: ja.Name, Amount: ja.Amount}
	if ja.CustomIcon != "" {
		a.Icon = CustomIcon(ja.CustomIcon)
	} else if ja.Icon != "" {
		a.Icon = PresetIcon(ja.Icon)
	}
	return nil
}

// decodeID accepts string ids, and numeric ones that some hand edited slots carry.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid id %s: %w", raw, err)
	}
	return n.String(), nil
}
