// Package schemasource reads the schema definition text served on GET /schema.
package schemasource

import (
	"context"
	"fmt"
	"os"
)

// Source returns the literal schema definition text.
type Source interface {
	Read(ctx context.Context) (string, error)
}

// File reads the definition from the local filesystem.
type File struct {
	Path string
}

func (f File) Read(ctx context.Context) (string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read schema source: %w", err)
	}
	return string(b), nil
}
