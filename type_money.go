package qianbao

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency assets are counted in when none is configured.
const DefaultCurrency = "CNY"

// maxFraction is the maximum number of fraction digits displayed.
const maxFraction = 3

// symbols overrides the go-money grapheme for some currencies.
var symbols = map[string]string{
	"CNY": "¥",
	"JPY": "¥",
}

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from any supported numeric value.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	}
	return decimal.Zero
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// Symbol returns the symbol displayed in front of amounts in this currency.
func (m Money) Symbol() string {
	if s, ok := symbols[m.cur]; ok {
		return s
	}
	return m.currency().Grapheme
}

// String returns the money the way a browser locale would print it: grouped
// thousands, at most three fraction digits and no trailing zeros.
func (m Money) String() string {
	cur := m.currency()
	rounded := m.value.Round(maxFraction)
	decimalSep, thousand := cur.Decimal, cur.Thousand
	if decimalSep == "" {
		decimalSep = "."
	}

	// digits are grouped from the decimal text, amounts are not bounded by int64.
	whole, frac, _ := strings.Cut(rounded.Abs().String(), ".")
	amount := group(whole, thousand)
	if frac != "" {
		amount += decimalSep + frac
	}
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + m.Symbol() + amount
}

// group inserts sep between every group of three digits of digits.
func group(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }

// AddDecimal adds a raw amount expressed in m's currency.
func (m Money) AddDecimal(d decimal.Decimal) Money {
	return Money{value: m.value.Add(d), cur: m.cur}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}
