package config

import (
	"os"
	"slices"
	"strings"

	"ytmdl/internal/logging"
)

// SongDirPath strips the custom subfolder template suffix from a SONG_DIR
// value. A $ introduces the Artist/Album/Title layout markup; only the path
// before it exists on disk.
func SongDirPath(value string) string {
	if idx := strings.IndexByte(value, '$'); idx >= 0 {
		return value[:idx]
	}
	return value
}

// Valid reports whether value may override the built-in default for key.
// Unrecognized keys are never valid.
func (r *Resolver) Valid(key, value string) bool {
	switch key {
	case KeySongDir:
		info, err := os.Stat(SongDirPath(value))
		return err == nil && info.IsDir()
	case KeyQuality:
		return value == "320" || value == "192"
	case KeyDefaultFormat:
		return slices.Contains(r.defaults.ValidFormats, value)
	case KeyMetadataProviders:
		if value == "" {
			r.logger.Warn("metadata provider override is empty, default providers will be used",
				logging.String("key", key))
			return false
		}
		// One known provider is enough; unknown names ride along untouched.
		for _, provider := range strings.Split(strings.ReplaceAll(value, " ", ""), ",") {
			if slices.Contains(r.defaults.AvailableProviders, provider) {
				return true
			}
		}
		return false
	}
	return false
}
