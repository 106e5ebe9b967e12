package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// appDataDir takes goos so tests can cover every platform branch.
func appDataDir(goos, appName string, roaming bool) string {
	appName = strings.TrimPrefix(appName, ".")
	if appName == "" {
		return "."
	}
	appNameUpper := string(unicode.ToUpper(rune(appName[0]))) + appName[1:]
	appNameLower := string(unicode.ToLower(rune(appName[0]))) + appName[1:]

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}

	switch goos {
	case "windows":
		// LOCALAPPDATA is missing before Vista.
		appData := os.Getenv("LOCALAPPDATA")
		if roaming || appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData != "" {
			return filepath.Join(appData, appNameUpper)
		}
	case "darwin":
		if homeDir != "" {
			return filepath.Join(homeDir, "Library", "Application Support", appNameUpper)
		}
	default:
		if homeDir != "" {
			return filepath.Join(homeDir, "."+appNameLower)
		}
	}

	return "."
}

// AppDataDir returns the per-user application data directory for appName:
//
//   - POSIX (Linux/BSD): ~/.sha2sum
//   - Mac OS: $HOME/Library/Application Support/Sha2sum
//   - Windows: %LOCALAPPDATA%\Sha2sum (%APPDATA% when roaming)
//
// An empty appName returns ".".
func AppDataDir(appName string, roaming bool) string {
	return appDataDir(runtime.GOOS, appName, roaming)
}
