package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// resolveMusicDir picks the default song directory. Preference order: the
// XDG music directory when user-dirs.dirs names one, then <home>/Music. When
// the chosen path does not exist on disk the working directory is used.
func resolveMusicDir(dirs Dirs) string {
	dir := musicDirFromUserDirs(dirs)
	if dir == "" {
		dir = filepath.Join(dirs.Home, "Music")
	}
	if _, err := os.Stat(dir); err != nil {
		return dirs.WorkingDir
	}
	return dir
}

// musicDirFromUserDirs scans the freedesktop user-dirs.dirs file for an
// XDG_MUSIC_DIR entry. A missing file or entry is "not found", never an error.
func musicDirFromUserDirs(dirs Dirs) string {
	file, err := os.Open(dirs.UserDirsFile)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "XDG_MUSIC_DIR") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), `"`)
		if value == "" {
			continue
		}
		return expandEnvRefs(value, dirs.Home)
	}
	return ""
}

// expandEnvRefs expands $VAR references, with $HOME pinned to the injected
// home directory so resolution stays consistent under test.
func expandEnvRefs(value, home string) string {
	return os.Expand(value, func(name string) string {
		if name == "HOME" {
			return home
		}
		return os.Getenv(name)
	})
}
