package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/storage"
	"github.com/google/go-cmp/cmp"
)

func TestRead_Defaults(t *testing.T) {
	c, err := Read(New())
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if c.Store != storage.KindFile {
		t.Errorf("Store = %q, want %q", c.Store, storage.KindFile)
	}
	if c.Key != qianbao.DefaultKey {
		t.Errorf("Key = %q, want %q", c.Key, qianbao.DefaultKey)
	}
	if c.Currency != "CNY" {
		t.Errorf("Currency = %q, want CNY", c.Currency)
	}
	if c.Card.Scale != 2 {
		t.Errorf("Card.Scale = %v, want 2", c.Card.Scale)
	}
	if c.Card.Timeout != 10*time.Second {
		t.Errorf("Card.Timeout = %v, want 10s", c.Card.Timeout)
	}
}

func TestRead_Env(t *testing.T) {
	t.Setenv("QB_STORE", "redis")
	t.Setenv("QB_REDIS_ADDR", "cache:6380")
	t.Setenv("QB_REDIS_DB", "3")
	t.Setenv("QB_CURRENCY", "USD")
	t.Setenv("QB_CARD_TIMEOUT", "2s")
	t.Setenv("QB_CARD_SCALE", "3")

	c, err := Read(New())
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	want := storage.Options{
		Kind:        storage.KindRedis,
		Dir:         c.Dir,
		RedisAddr:   "cache:6380",
		RedisDB:     3,
		RedisPrefix: storage.DefaultRedisPrefix,
	}
	if diff := cmp.Diff(want, c.Storage()); diff != "" {
		t.Errorf("Storage() mismatch (-want +got):\n%s", diff)
	}
	if c.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", c.Currency)
	}
	if c.Card.Timeout != 2*time.Second || c.Card.Scale != 3 {
		t.Errorf("Card = %+v, want timeout 2s and scale 3", c.Card)
	}
}

func TestRead_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "qianbao.yaml")
	content := `
store: memory
currency: EUR
card:
  title: Mes avoirs
  footer: ""
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	v := New()
	v.SetConfigFile(file)
	c, err := Read(v)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if c.Store != storage.KindMemory || c.Currency != "EUR" {
		t.Errorf("got store %q currency %q, want memory EUR", c.Store, c.Currency)
	}

	k := c.NewCard(qianbao.M(10, c.Currency))
	if k.Title != "Mes avoirs" {
		t.Errorf("card title = %q, want the configured one", k.Title)
	}
	if k.Footer == "" {
		t.Errorf("empty footer should fall back to the default one")
	}
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		env, value string
		want       string
	}{
		{"QB_STORE", "s3", "store"},
		{"QB_CURRENCY", "yuan", "currency"},
		{"QB_KEY", "", "key"},
		{"QB_CARD_SCALE", "0", "card.scale"},
		{"QB_CARD_TIMEOUT", "-1s", "card.timeout"},
		{"QB_LOG_LEVEL", "loud", "log.level"},
		{"QB_LOG_FORMAT", "xml", "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			v := New()
			v.Set(strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(tt.env, "QB_"), "_", ".")), tt.value)
			_, err := Read(v)
			if err == nil {
				t.Fatalf("Read() with %s=%q succeeded, want an error", tt.env, tt.value)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Read() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
