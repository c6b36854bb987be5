package store

import (
	"context"
	"errors"
	"reflect"
)

// ErrNoStore is returned by handlers and services when no document store is configured.
var ErrNoStore = errors.New("document store not configured")

// Document is one stored record as returned by the store, including the
// store-internal "_id" field.
type Document map[string]any

// Filter selects documents by field. A document matches when, for every entry,
// the field equals the value or is an array containing it.
type Filter map[string]any

// Store is a schemaless document store grouped into named collections.
type Store interface {
	// Name returns the database name.
	Name() string
	// Insert stores doc and returns the store-assigned identifier.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// Find returns up to limit matching documents in insertion order.
	// A limit <= 0 means no cap.
	Find(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error)
	ListCollections(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Matches reports whether doc satisfies every entry of f.
func (f Filter) Matches(doc Document) bool {
	for field, want := range f {
		if !fieldMatches(doc[field], want) {
			return false
		}
	}
	return true
}

func fieldMatches(got, want any) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	rv := reflect.ValueOf(got)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if reflect.DeepEqual(rv.Index(i).Interface(), want) {
			return true
		}
	}
	return false
}
