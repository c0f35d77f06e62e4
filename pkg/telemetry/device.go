package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// LoadDeviceGUID returns the device identifier stored at path, creating and
// persisting a new one when the file is missing or empty. If the file cannot
// be written the new identifier is still returned for this process.
func LoadDeviceGUID(path string) string {
	if data, err := os.ReadFile(path); err == nil {
		if existing := strings.TrimSpace(string(data)); existing != "" {
			return existing
		}
	}

	newGUID := uuid.New().String()
	_ = saveDeviceGUID(path, newGUID)
	return newGUID
}

func saveDeviceGUID(path, guid string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader([]byte(guid)))
}
