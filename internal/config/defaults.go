package config

import (
	"path/filepath"
	"strings"
)

// Keys recognized in the config file.
const (
	KeySongDir           = "SONG_DIR"
	KeyQuality           = "QUALITY"
	KeyMetadataProviders = "METADATA_PROVIDERS"
	KeyDefaultFormat     = "DEFAULT_FORMAT"
)

// ConfigFileName is the literal name of the config file inside the ytmdl
// configuration directory.
const ConfigFileName = "config"

const (
	appDirName     = "ytmdl"
	defaultQuality = "320"
	defaultFormat  = "mp3"
)

// Keys lists the recognized config keys in template order.
func Keys() []string {
	return []string{KeySongDir, KeyQuality, KeyMetadataProviders, KeyDefaultFormat}
}

// Defaults holds the built-in values used whenever no valid override exists.
type Defaults struct {
	HomeDir     string
	SongDir     string
	SongTempDir string
	SongQuality string
	ConfigDir   string

	// MetadataProviders are queried by default, in order. AvailableProviders
	// is the superset a METADATA_PROVIDERS override may draw from.
	MetadataProviders  []string
	AvailableProviders []string

	ValidFormats  []string
	DefaultFormat string
}

// NewDefaults builds the built-in defaults for the given platform directories.
// Music-directory discovery stats the filesystem, so construction is
// idempotent but not free.
func NewDefaults(dirs Dirs) Defaults {
	songDir := resolveMusicDir(dirs)
	providers := []string{"itunes", "gaana", "saavn"}
	return Defaults{
		HomeDir:            dirs.Home,
		SongDir:            songDir,
		SongTempDir:        filepath.Join(songDir, appDirName),
		SongQuality:        defaultQuality,
		ConfigDir:          filepath.Join(dirs.ConfigHome, appDirName),
		MetadataProviders:  providers,
		AvailableProviders: append(append([]string{}, providers...), "deezer", "lastfm"),
		ValidFormats:       []string{"mp3", "m4a", "opus"},
		DefaultFormat:      defaultFormat,
	}
}

// Value returns the built-in default for key. The provider list is rendered
// the way it appears in the config file. Unrecognized keys return "".
func (d Defaults) Value(key string) string {
	switch key {
	case KeySongDir:
		return d.SongDir
	case KeyQuality:
		return d.SongQuality
	case KeyMetadataProviders:
		return strings.Join(d.MetadataProviders, ", ")
	case KeyDefaultFormat:
		return d.DefaultFormat
	}
	return ""
}
