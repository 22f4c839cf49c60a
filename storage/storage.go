// Package storage implements the key-value slots the asset collection is
// persisted into: a folder of files, a redis database, or plain memory.
package storage

import (
	"fmt"

	"github.com/etnz/qianbao"
)

// Kinds of slots accepted by Open.
const (
	KindFile   = "file"
	KindRedis  = "redis"
	KindMemory = "memory"
)

// Slot is a qianbao.Slot holding resources until closed.
type Slot interface {
	qianbao.Slot
	Close() error
}

// Options select and configure the slot opened by Open.
type Options struct {
	Kind string

	// Dir is the folder of a file slot.
	Dir string

	// Redis connection, and the prefix of every key.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open opens the slot described by o.
func Open(o Options) (Slot, error) {
	switch o.Kind {
	case KindFile, "":
		return NewFile(o.Dir)
	case KindRedis:
		return NewRedis(o.RedisAddr, o.RedisPassword, o.RedisDB, o.RedisPrefix), nil
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q, expected one of %q, %q or %q", o.Kind, KindFile, KindRedis, KindMemory)
	}
}
