package qianbao

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// DefaultKey is the slot key holding the asset collection.
const DefaultKey = "assets"

// ErrSlotEmpty is returned by a Slot when the key holds no value.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a persistent key-value slot holding one serialized blob per key.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store is the asset collection kept in sync with its slot.
//
// Every mutation writes the whole collection back to the slot. When the write
// fails the mutation is undone, so that memory never drifts from the slot.
// Last writer wins: concurrent processes sharing a slot are not coordinated.
type Store struct {
	mu       sync.Mutex
	slot     Slot
	key      string
	currency string
	book     *Book
	newID    func() string
}

// NewStore creates a store over slot. The book is empty until Load is called.
func NewStore(slot Slot, key, currency string) *Store {
	if key == "" {
		key = DefaultKey
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Store{
		slot:     slot,
		key:      key,
		currency: currency,
		book:     NewBook(),
		newID:    NewID,
	}
}

// Currency returns the currency amounts are counted in.
func (s *Store) Currency() string { return s.currency }

// Load reads the collection from the slot. An empty slot is an empty book.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrSlotEmpty) {
		s.book = NewBook()
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read slot %q: %w", s.key, err)
	}
	book, err := DecodeBook(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot decode slot %q: %w", s.key, err)
	}
	s.book = book
	log.WithFields(log.Fields{"key": s.key, "assets": book.Len()}).Debug("loaded assets")
	return nil
}

// Add appends a new asset built from d, with a fresh id.
func (s *Store) Add(ctx context.Context, d Draft) (Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := d.asset(s.newID())
	prev := s.book.Assets()
	if err := s.book.Append(a); err != nil {
		return Asset{}, err
	}
	if err := s.persist(ctx); err != nil {
		s.book.assets = prev
		return Asset{}, err
	}
	return a, nil
}

// Update replaces every mutable field of the asset id with d's values.
func (s *Store) Update(ctx context.Context, id string, d Draft) (Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := d.asset(id)
	prev := s.book.Assets()
	if err := s.book.Replace(a); err != nil {
		return Asset{}, err
	}
	if err := s.persist(ctx); err != nil {
		s.book.assets = prev
		return Asset{}, err
	}
	return a, nil
}

// Rewrite writes the collection back in the current schema.
func (s *Store) Rewrite(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

// Get returns the asset with this id.
func (s *Store) Get(id string) (Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Get(id)
}

// Assets returns the assets in insertion order.
func (s *Store) Assets() []Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Assets()
}

// Total returns the sum of all asset amounts.
func (s *Store) Total() Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Total(s.currency)
}

// Snapshot returns the assets in insertion order together with their total,
// both read under the same lock.
func (s *Store) Snapshot() ([]Asset, Money) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Assets(), s.book.Total(s.currency)
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	var buf bytes.Buffer
	if err := EncodeBook(&buf, s.book); err != nil {
		return fmt.Errorf("cannot encode assets: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, buf.Bytes()); err != nil {
		return fmt.Errorf("cannot write slot %q: %w", s.key, err)
	}
	log.WithFields(log.Fields{"key": s.key, "assets": s.book.Len()}).Debug("persisted assets")
	return nil
}
