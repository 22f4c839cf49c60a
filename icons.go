package qianbao

// Preset is one of the symbols an asset can use without uploading an image.
type Preset struct {
	Symbol string
	Label  string
}

// presets in display order, the first one is the default icon.
var presets = []Preset{
	{Symbol: "💰", Label: "Money bag"},
	{Symbol: "💵", Label: "Banknotes"},
	{Symbol: "💳", Label: "Bank card"},
	{Symbol: "🏦", Label: "Bank"},
	{Symbol: "💎", Label: "Jewelry"},
	{Symbol: "🏠", Label: "Real estate"},
	{Symbol: "🚗", Label: "Car"},
}

// Presets returns a copy of the preset icons in display order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// IsPreset reports whether symbol is one of the preset icons.
func IsPreset(symbol string) bool {
	for _, p := range presets {
		if p.Symbol == symbol {
			return true
		}
	}
	return false
}

// DefaultIcon returns the icon used when nothing has been selected.
func DefaultIcon() Icon { return PresetIcon(presets[0].Symbol) }
