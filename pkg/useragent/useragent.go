// Package useragent selects the browser-like User-Agent string reported to
// the analytics collector for the host platform.
package useragent

import "fmt"

const (
	linuxTemplate   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/535.11 (KHTML, like Gecko) Ubuntu/11.10 Chromium/27.0.1453.93 Chrome/27.0.1453.93 Safari/537.36"
	windowsTemplate = "Mozilla/5.0 (Windows NT %s; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/77.0.2128.93 Safari/537.36"
	darwinTemplate  = "Mozilla/5.0 (Macintosh; Intel Mac OS X %s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/85.0.4183.102 Safari/537.36"

	defaultWindowsRelease = "10.0"
	defaultDarwinRelease  = "10_15_6"
)

// Default is the User-Agent used for unrecognized platforms and whenever the
// platform-specific derivation fails.
var Default = fmt.Sprintf(windowsTemplate, defaultWindowsRelease)

// Select returns the User-Agent for the given GOOS value. The release lookup is
// only consulted on windows and darwin; if it fails, Default is returned.
func Select(goos string, release func() (string, error)) string {
	switch goos {
	case "linux":
		return linuxTemplate
	case "windows":
		v, err := lookup(release, defaultWindowsRelease)
		if err != nil {
			return Default
		}
		return fmt.Sprintf(windowsTemplate, v)
	case "darwin":
		v, err := lookup(release, defaultDarwinRelease)
		if err != nil {
			return Default
		}
		return fmt.Sprintf(darwinTemplate, v)
	default:
		return Default
	}
}

func lookup(release func() (string, error), fallback string) (string, error) {
	if release == nil {
		return fallback, nil
	}
	v, err := release()
	if err != nil {
		return "", err
	}
	if v == "" {
		return fallback, nil
	}
	return v, nil
}
