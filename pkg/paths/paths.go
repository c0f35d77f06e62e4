package paths

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns the user's config directory for beacon.
//
// If the home directory cannot be determined, it falls back to a directory
// under the system temporary directory.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".beacon-config"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".config", "beacon"))
}

// GetDeviceGUIDFile returns the file holding the persisted device identifier.
func GetDeviceGUIDFile() string {
	return filepath.Join(GetConfigDir(), "device-guid")
}
