package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Dirs captures the platform directories the resolution engine reads from.
// Tests inject temp roots here instead of touching the real home directory.
type Dirs struct {
	Home         string
	ConfigHome   string // XDG configuration root, usually ~/.config
	WorkingDir   string
	UserDirsFile string // freedesktop user-dirs.dirs location
}

// DefaultDirs discovers platform directories from the process environment.
func DefaultDirs() Dirs {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}
	return Dirs{
		Home:         home,
		ConfigHome:   configHome,
		WorkingDir:   workingDir,
		UserDirsFile: filepath.Join(configHome, "user-dirs.dirs"),
	}
}
