package store

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store used for local development and tests.
// Documents go through a BSON round trip on insert so reads look the same as
// reads from MongoDB (ObjectID "_id", bson arrays, bson tags honoured).
type Memory struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]Document
	order       []string
}

func NewMemory(name string) *Memory {
	if name == "" {
		name = "memory"
	}
	return &Memory{name: name, collections: make(map[string][]Document)}
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Insert(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	var stored bson.M
	if err := bson.Unmarshal(raw, &stored); err != nil {
		return "", fmt.Errorf("decode document: %w", err)
	}
	id, ok := stored["_id"].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()
		stored["_id"] = id
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.collections[collection]; !exists {
		m.order = append(m.order, collection)
	}
	m.collections[collection] = append(m.collections[collection], Document(stored))
	return id.Hex(), nil
}

func (m *Memory) Find(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Document{}
	for _, d := range m.collections[collection] {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if !filter.Matches(d) {
			continue
		}
		cp := make(Document, len(d))
		for k, v := range d {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *Memory) ListCollections(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }
