package main

import (
	"context"
	"strings"
	"testing"

	"github.com/kinsman/brandsite/backend/go-services/internal/projects"
	"github.com/kinsman/brandsite/backend/go-services/internal/store"
	"github.com/stretchr/testify/require"
)

const sample = `
- title: Site API
  description: Backend for this site
  tags: [go, mongo]
  repo: https://example.com/site
- title: Ray tracer
  description: Weekend project
  tags:
    - rust
- title: Missing description
`

func TestParseAndSeed(t *testing.T) {
	entries, err := parseProjects(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	mem := store.NewMemory("seed")
	stored, failed := seed(context.Background(), projects.NewService(mem), entries)
	require.Equal(t, 2, stored)
	require.Equal(t, 1, failed)

	list, err := projects.NewService(mem).List(context.Background(), "rust", 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Ray tracer", list[0].Title)
}

func TestSeedDryRunWritesNothing(t *testing.T) {
	entries, err := parseProjects(strings.NewReader(sample))
	require.NoError(t, err)

	stored, failed := seed(context.Background(), nil, entries)
	require.Zero(t, stored)
	require.Equal(t, 1, failed)
}

func TestParseProjectsEdgeCases(t *testing.T) {
	entries, err := parseProjects(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = parseProjects(strings.NewReader("title: not a list"))
	require.Error(t, err)
}
