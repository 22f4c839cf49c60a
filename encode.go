package qianbao

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/PaesslerAG/jsonpath"
)

// SchemaVersion is the version of the persisted document written by EncodeBook.
//
// Known versions:
//
//	0: a bare JSON array of asset records, as written by the first browser app.
//	1: {"schema":1,"assets":[...]}.
const SchemaVersion = 1

// ErrUnsupportedSchema is returned when a document has an unknown shape or version.
var ErrUnsupportedSchema = errors.New("unsupported schema")

// jbook is the persisted document, schema first.
type jbook struct {
	Schema int     `json:"schema"`
	Assets []Asset `json:"assets"`
}

// EncodeBook writes the book as a document of the current schema.
func EncodeBook(w io.Writer, b *Book) error {
	assets := b.assets
	if assets == nil {
		assets = []Asset{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(jbook{Schema: SchemaVersion, Assets: assets})
}

// DecodeBook reads a document of any known schema, migrating older ones.
//
// An empty document is an empty book. Every invalid record is reported.
func DecodeBook(r io.Reader) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewBook(), nil
	}

	var jdoc any
	if err := json.Unmarshal(data, &jdoc); err != nil {
		return nil, fmt.Errorf("not a correct json: %w", err)
	}
	schema, err := schemaOf(jdoc)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	switch schema {
	case 0:
		err = json.Unmarshal(data, &records)
	case 1:
		var doc struct {
			Assets []json.RawMessage `json:"assets"`
		}
		err = json.Unmarshal(data, &doc)
		records = doc.Assets
	default:
		return nil, fmt.Errorf("%w: version %d is newer than %d", ErrUnsupportedSchema, schema, SchemaVersion)
	}
	if err != nil {
		return nil, fmt.Errorf("schema %d: %w", schema, err)
	}

	book := NewBook()
	var errs error
	for i, raw := range records {
		var a Asset
		if err := json.Unmarshal(raw, &a); err != nil {
			errs = errors.Join(errs, fmt.Errorf("record #%d: %w", i, err))
			continue
		}
		if err := book.Append(a); err != nil {
			errs = errors.Join(errs, fmt.Errorf("record #%d: %w", i, err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return book, nil
}

// schemaOf probes the untyped document for its schema version.
func schemaOf(jdoc any) (int, error) {
	switch jdoc.(type) {
	case []any:
		return 0, nil
	case map[string]any:
	default:
		return 0, fmt.Errorf("%w: expected an array or an object, got %T", ErrUnsupportedSchema, jdoc)
	}

	jval, err := jsonpath.Get("$.schema", jdoc)
	if err != nil {
		return 0, fmt.Errorf("%w: missing the property %q: %v", ErrUnsupportedSchema, "schema", err)
	}
	version, ok := jval.(float64)
	if !ok || version != math.Trunc(version) || version < 1 {
		return 0, fmt.Errorf("%w: property %q must be a positive integer, got %v", ErrUnsupportedSchema, "schema", jval)
	}

	if jassets, err := jsonpath.Get("$.assets", jdoc); err == nil {
		if _, ok := jassets.([]any); !ok {
			return 0, fmt.Errorf("%w: property %q must be an array", ErrUnsupportedSchema, "assets")
		}
	}
	return int(version), nil
}
