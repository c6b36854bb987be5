package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveName(t *testing.T) {
	name, err := ResolveName("mongodb://localhost:27017/ignored", "site")
	require.NoError(t, err)
	require.Equal(t, "site", name)

	name, err = ResolveName("mongodb://localhost:27017/portfolio?retryWrites=true", "")
	require.NoError(t, err)
	require.Equal(t, "portfolio", name)

	name, err = ResolveName("mongodb://localhost:27017", "")
	require.NoError(t, err)
	require.Equal(t, DefaultName, name)

	_, err = ResolveName("http://not-mongo", "")
	require.Error(t, err)
}
