package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kinsman/brandsite/backend/go-services/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeStore struct {
	*store.Memory
	err   error
	panic bool
}

func (p probeStore) ListCollections(ctx context.Context) ([]string, error) {
	if p.panic {
		panic("nil pointer dereference in driver")
	}
	return nil, p.err
}

func TestSnapshotHealthyStoreCapsCollections(t *testing.T) {
	mem := store.NewMemory("site")
	for i := 0; i < 12; i++ {
		_, err := mem.Insert(context.Background(), fmt.Sprintf("c%02d", i), map[string]any{"n": i})
		require.NoError(t, err)
	}

	r := Snapshot(context.Background(), mem, Env{URLSet: true, NameSet: false})
	assert.Equal(t, "✅ Running", r.Backend)
	assert.Equal(t, "✅ Connected & Working", r.Database)
	assert.Equal(t, "Connected", r.ConnectionStatus)
	assert.Equal(t, "✅ Set", r.DatabaseURL)
	assert.Equal(t, "❌ Not Set", r.DatabaseName)
	require.Len(t, r.Collections, 10)
	assert.Equal(t, "c00", r.Collections[0])
}

func TestSnapshotWithoutStore(t *testing.T) {
	r := Snapshot(context.Background(), nil, Env{})
	assert.Equal(t, "⚠️  Available but not initialized", r.Database)
	assert.Equal(t, "Not Connected", r.ConnectionStatus)
	assert.NotNil(t, r.Collections)
	assert.Empty(t, r.Collections)
	assert.Equal(t, "❌ Not Set", r.DatabaseURL)
}

func TestSnapshotProbeErrorIsTruncated(t *testing.T) {
	long := strings.Repeat("e", 80)
	r := Snapshot(context.Background(), probeStore{Memory: store.NewMemory(""), err: errors.New(long)}, Env{URLSet: true, NameSet: true})
	assert.Equal(t, "⚠️  Connected but Error: "+strings.Repeat("e", 50), r.Database)
	assert.Equal(t, "Connected", r.ConnectionStatus)
	assert.Empty(t, r.Collections)
	assert.Equal(t, "✅ Set", r.DatabaseName)
}

func TestSnapshotRecoversFromPanic(t *testing.T) {
	r := Snapshot(context.Background(), probeStore{Memory: store.NewMemory(""), panic: true}, Env{URLSet: true})
	assert.Equal(t, "❌ Error: nil pointer dereference in driver", r.Database)
	assert.Equal(t, "✅ Set", r.DatabaseURL)
	assert.Equal(t, "❌ Not Set", r.DatabaseName)
}
