package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/kinsman/brandsite/backend/go-services/internal/schema"
	"github.com/kinsman/brandsite/backend/go-services/internal/store"
)

// ErrUnavailable means the listing could not be produced from the store. List
// returns it together with an empty, non-nil result.
var ErrUnavailable = errors.New("project store unavailable")

const collection = "project"

// Service lists and creates portfolio projects.
type Service struct {
	store store.Store
}

// NewService returns a Service on s; s may be nil.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// List returns up to limit projects in insertion order, only those tagged tag when
// tag is non-empty. Stored documents are re-validated; if the store fails or any
// document is not a valid Project the result is empty and the error wraps
// ErrUnavailable.
func (s *Service) List(ctx context.Context, tag string, limit int) ([]*schema.Project, error) {
	empty := []*schema.Project{}
	if s.store == nil {
		return empty, fmt.Errorf("%w: %v", ErrUnavailable, store.ErrNoStore)
	}

	var filter store.Filter
	if tag != "" {
		filter = store.Filter{"tags": tag}
	}
	docs, err := s.store.Find(ctx, collection, filter, int64(limit))
	if err != nil {
		return empty, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out := make([]*schema.Project, 0, len(docs))
	for _, d := range docs {
		raw := make(map[string]any, len(d))
		for k, v := range d {
			if k == "_id" {
				continue
			}
			raw[k] = v
		}
		p, err := schema.Decode[*schema.Project](raw)
		if err != nil {
			return empty, fmt.Errorf("%w: document %v: %v", ErrUnavailable, d["_id"], err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Create validates raw as a Project and stores it.
func (s *Service) Create(ctx context.Context, raw map[string]any) (string, error) {
	p, err := schema.Decode[*schema.Project](raw)
	if err != nil {
		return "", err
	}
	return s.Insert(ctx, p)
}

// Insert stores an already validated project.
func (s *Service) Insert(ctx context.Context, p *schema.Project) (string, error) {
	if s.store == nil {
		return "", store.ErrNoStore
	}
	id, err := s.store.Insert(ctx, collection, p)
	if err != nil {
		return "", fmt.Errorf("insert project: %w", err)
	}
	return id, nil
}
