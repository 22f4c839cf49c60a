package qianbao

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// CNY is a helper for test to create yuan money from const
func CNY(v float64) Money { return M(v, "CNY") }

// D is a helper for test to create a decimal from its string representation.
func D(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// memSlot is an in-memory Slot for tests.
type memSlot struct {
	values map[string][]byte
	fail   error // returned by Set when not nil
	sets   int
}

func newMemSlot() *memSlot { return &memSlot{values: make(map[string][]byte)} }

func (s *memSlot) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return v, nil
}

func (s *memSlot) Set(_ context.Context, key string, value []byte) error {
	if s.fail != nil {
		return s.fail
	}
	s.sets++
	s.values[key] = append([]byte(nil), value...)
	return nil
}

var errDiskFull = errors.New("disk full")

// draft builds a validated draft through the form, like a user would.
func draft(t *testing.T, name, amount, icon string) Draft {
	t.Helper()
	f := NewForm()
	f.Name, f.Amount = name, amount
	if icon != "" {
		if err := f.SelectPreset(icon); err != nil {
			t.Fatal(err)
		}
	}
	d, err := f.Validate()
	if err != nil {
		t.Fatalf("invalid draft %q %q: %v", name, amount, err)
	}
	return d
}
