package telemetry

import (
	"cmp"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// SystemInfo reports the host facts carried by identify events.
type SystemInfo interface {
	// Platform returns the GOOS-style platform identifier.
	Platform() string
	Arch() string
	// Release returns the OS kernel release string.
	Release() (string, error)
	Uptime() (time.Duration, error)
}

// hostInfo reads the running host through gopsutil.
type hostInfo struct{}

func (hostInfo) Platform() string { return runtime.GOOS }

func (hostInfo) Arch() string { return runtime.GOARCH }

func (hostInfo) Release() (string, error) {
	release, err := host.KernelVersion()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		return normalizeWindowsRelease(release), nil
	}
	return release, nil
}

// normalizeWindowsRelease turns gopsutil's "10.0.19045.3803 Build 19045.3803"
// into the major.minor.build form "10.0.19045".
func normalizeWindowsRelease(release string) string {
	release, _, _ = strings.Cut(release, " Build")
	parts := strings.Split(strings.TrimSpace(release), ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}

func (hostInfo) Uptime() (time.Duration, error) {
	secs, err := host.Uptime()
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// getLanguage resolves the locale from the environment.
func getLanguage() string {
	return cmp.Or(
		os.Getenv("LANG"),
		os.Getenv("LANGUAGE"),
		os.Getenv("LC_ALL"),
		os.Getenv("LC_MESSAGES"),
		defaultLanguage,
	)
}

func GetTelemetryEnabled() bool {
	// Disable telemetry when running in tests to prevent HTTP calls
	if flag.Lookup("test.v") != nil {
		return false
	}
	return getTelemetryEnabledFromEnv()
}

// getTelemetryEnabledFromEnv checks only the environment variable,
// without the test detection bypass.
func getTelemetryEnabledFromEnv() bool {
	if env := os.Getenv("TELEMETRY_ENABLED"); env != "" {
		// Only disable if explicitly set to "false"
		return env != "false"
	}
	return true
}
