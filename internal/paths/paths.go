// Package paths resolves where questlog keeps its files on disk.
package paths

import (
	"os"
	"path/filepath"
)

const app = "questlog"

// xdgDir returns $env/questlog when env names an absolute directory and
// the fallback otherwise. Relative XDG values are ignored.
func xdgDir(env string, fallback func() (string, error)) (string, error) {
	if base := os.Getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, app), nil
	}
	return fallback()
}

func ConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", func() (string, error) {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, app), nil
	})
}

// StateDir holds what the app writes while running, such as the session log.
func StateDir() (string, error) {
	return xdgDir("XDG_STATE_HOME", func() (string, error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return ConfigDir()
		}
		return filepath.Join(home, ".local", "state", app), nil
	})
}

func ConfigPath() (string, error) {
	return fileIn(ConfigDir, "config.json")
}

func LogPath() (string, error) {
	return fileIn(StateDir, app+".log")
}

func fileIn(dir func() (string, error), name string) (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, name), nil
}
