package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type tagged struct {
	Title string   `bson:"title"`
	Tags  []string `bson:"tags"`
}

func TestMemoryInsertFind(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("site")
	require.Equal(t, "site", m.Name())

	id, err := m.Insert(ctx, "project", &tagged{Title: "a", Tags: []string{"rust", "go"}})
	require.NoError(t, err)
	require.Len(t, id, 24)
	_, err = m.Insert(ctx, "project", &tagged{Title: "b", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = m.Insert(ctx, "project", &tagged{Title: "c", Tags: []string{"rust"}})
	require.NoError(t, err)

	all, err := m.Find(ctx, "project", nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "a", all[0]["title"])
	oid, ok := all[0]["_id"].(primitive.ObjectID)
	require.True(t, ok)
	require.Equal(t, id, oid.Hex())

	rust, err := m.Find(ctx, "project", Filter{"tags": "rust"}, 2)
	require.NoError(t, err)
	require.Len(t, rust, 2)
	require.Equal(t, "a", rust[0]["title"])
	require.Equal(t, "c", rust[1]["title"])

	capped, err := m.Find(ctx, "project", nil, 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)

	none, err := m.Find(ctx, "missing", nil, 10)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestMemoryFindReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("")
	_, err := m.Insert(ctx, "project", &tagged{Title: "a"})
	require.NoError(t, err)

	docs, err := m.Find(ctx, "project", nil, 0)
	require.NoError(t, err)
	delete(docs[0], "_id")

	again, err := m.Find(ctx, "project", nil, 0)
	require.NoError(t, err)
	require.Contains(t, again[0], "_id")
}

func TestMemoryListCollections(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("")
	require.NoError(t, m.Ping(ctx))
	_, _ = m.Insert(ctx, "contactmessage", &tagged{Title: "x"})
	_, _ = m.Insert(ctx, "project", &tagged{Title: "y"})
	_, _ = m.Insert(ctx, "contactmessage", &tagged{Title: "z"})

	names, err := m.ListCollections(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"contactmessage", "project"}, names)
}

func TestFilterMatches(t *testing.T) {
	doc := Document{"tags": primitive.A{"rust", "go"}, "title": "a"}
	require.True(t, Filter{"tags": "go"}.Matches(doc))
	require.True(t, Filter{"title": "a"}.Matches(doc))
	require.False(t, Filter{"tags": "zig"}.Matches(doc))
	require.False(t, Filter{"missing": "x"}.Matches(doc))
	require.True(t, Filter(nil).Matches(doc))
}
