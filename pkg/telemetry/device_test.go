package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDeviceGUIDCreatesAndReuses(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "device-guid")

	first := LoadDeviceGUID(path)
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, string(data))

	assert.Equal(t, first, LoadDeviceGUID(path))
}

func TestLoadDeviceGUIDReplacesEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "device-guid")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	guid := LoadDeviceGUID(path)
	assert.NotEmpty(t, guid)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, guid, string(data))
}

func TestLoadDeviceGUIDTrimsExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "device-guid")
	require.NoError(t, os.WriteFile(path, []byte("existing-guid\n"), 0o600))

	assert.Equal(t, "existing-guid", LoadDeviceGUID(path))
}
