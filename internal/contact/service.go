package contact

import (
	"context"
	"fmt"

	"github.com/kinsman/brandsite/backend/go-services/internal/schema"
	"github.com/kinsman/brandsite/backend/go-services/internal/store"
	"github.com/kinsman/brandsite/backend/go-services/pkg/logger"
)

// Notifier is told about every stored contact message.
type Notifier interface {
	NotifyContact(ctx context.Context, msg *schema.ContactMessage) error
}

// Service validates and stores contact form submissions.
type Service struct {
	store    store.Store
	notifier Notifier
}

// NewService returns a Service writing to s. s may be nil when no store is
// configured, in which case every valid submission fails with store.ErrNoStore.
// notifier is optional.
func NewService(s store.Store, notifier Notifier) *Service {
	return &Service{store: s, notifier: notifier}
}

// Submit validates raw as a ContactMessage and stores it. Invalid payloads return a
// *schema.ValidationError and never reach the store.
func (s *Service) Submit(ctx context.Context, raw map[string]any) (string, error) {
	msg, err := schema.Decode[*schema.ContactMessage](raw)
	if err != nil {
		return "", err
	}
	if s.store == nil {
		return "", store.ErrNoStore
	}
	col, err := schema.CollectionFor(msg.SchemaName())
	if err != nil {
		return "", err
	}
	id, err := s.store.Insert(ctx, col, msg)
	if err != nil {
		return "", fmt.Errorf("insert contact message: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, msg); err != nil {
			logger.Warnf("contact notification for %s failed: %v", id, err)
		}
	}
	return id, nil
}
