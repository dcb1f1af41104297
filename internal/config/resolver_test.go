package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytmdl/internal/config"
	"ytmdl/internal/logging"
)

func testDirs(t *testing.T) config.Dirs {
	t.Helper()
	base := t.TempDir()
	home := filepath.Join(base, "home")
	configHome := filepath.Join(home, ".config")
	if err := os.MkdirAll(configHome, 0o755); err != nil {
		t.Fatalf("create config home: %v", err)
	}
	return config.Dirs{
		Home:         home,
		ConfigHome:   configHome,
		WorkingDir:   base,
		UserDirsFile: filepath.Join(configHome, "user-dirs.dirs"),
	}
}

func writeConfigFile(t *testing.T, dirs config.Dirs, lines ...string) {
	t.Helper()
	configDir := filepath.Join(dirs.ConfigHome, "ytmdl")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(configDir, config.ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
}

func TestResolveFreshSystemReturnsDefaults(t *testing.T) {
	dirs := testDirs(t)
	resolver := config.NewWithDirs(dirs, logging.NewNop())
	defaults := resolver.Defaults()

	for _, key := range config.Keys() {
		if got := resolver.Resolve(key); got != defaults.Value(key) {
			t.Fatalf("Resolve(%s) = %q, want default %q", key, got, defaults.Value(key))
		}
	}

	// The first resolution repairs the missing file with the template.
	if !resolver.Store().IsFullySetUp() {
		t.Fatal("expected config file to exist after first resolution")
	}
	if got := resolver.Resolve(config.KeyQuality); got != "320" {
		t.Fatalf("quality default = %q, want 320", got)
	}
	if got := resolver.Resolve(config.KeyDefaultFormat); got != "mp3" {
		t.Fatalf("format default = %q, want mp3", got)
	}
	if got := resolver.Resolve(config.KeyMetadataProviders); got != "itunes, gaana, saavn" {
		t.Fatalf("provider default = %q", got)
	}
}

func TestResolveSongDirOverride(t *testing.T) {
	dirs := testDirs(t)
	custom := filepath.Join(dirs.Home, "tunes")
	if err := os.MkdirAll(custom, 0o755); err != nil {
		t.Fatalf("create custom dir: %v", err)
	}
	writeConfigFile(t, dirs, `SONG_DIR = "`+custom+`"`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	if got := resolver.Resolve(config.KeySongDir); got != custom {
		t.Fatalf("Resolve(SONG_DIR) = %q, want %q", got, custom)
	}
}

func TestResolveSongDirMissingPathFallsBack(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs, `SONG_DIR = "/definitely/not/a/real/path"`)

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	resolver := config.NewWithDirs(dirs, logger)
	if got, want := resolver.Resolve(config.KeySongDir), resolver.Defaults().SongDir; got != want {
		t.Fatalf("Resolve(SONG_DIR) = %q, want default %q", got, want)
	}
	if !strings.Contains(buf.String(), "ignoring invalid config override") {
		t.Fatalf("expected warning for invalid override, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "/definitely/not/a/real/path") {
		t.Fatalf("expected offending value in warning, got %q", buf.String())
	}
}

func TestResolveSongDirSubfolderTemplateKeptVerbatim(t *testing.T) {
	dirs := testDirs(t)
	base := filepath.Join(dirs.Home, "Music")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatalf("create music dir: %v", err)
	}
	override := base + "$Artist->Album->Title"
	writeConfigFile(t, dirs, `SONG_DIR = "`+override+`"`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	// Validation truncates at $ only for the existence check; the returned
	// value keeps the suffix.
	if got := resolver.Resolve(config.KeySongDir); got != override {
		t.Fatalf("Resolve(SONG_DIR) = %q, want %q", got, override)
	}
}

func TestResolveQualityRejectsUnknownBitrate(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs, `QUALITY = "256"`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	if got := resolver.Resolve(config.KeyQuality); got != "320" {
		t.Fatalf("Resolve(QUALITY) = %q, want fallback 320", got)
	}

	writeConfigFile(t, dirs, `QUALITY = "192"`)
	if got := resolver.Resolve(config.KeyQuality); got != "192" {
		t.Fatalf("Resolve(QUALITY) = %q, want 192", got)
	}
}

func TestResolveFormatRejectsUnknownFormat(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs, `DEFAULT_FORMAT = "wav"`)

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	resolver := config.NewWithDirs(dirs, logger)
	if got := resolver.Resolve(config.KeyDefaultFormat); got != "mp3" {
		t.Fatalf("Resolve(DEFAULT_FORMAT) = %q, want fallback mp3", got)
	}
	if !strings.Contains(buf.String(), "ignoring invalid config override") {
		t.Fatalf("expected warning for rejected format, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "wav") {
		t.Fatalf("expected offending value in warning, got %q", buf.String())
	}
}

func TestSongDirPathStripsTemplateSuffix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/home/user/Music", "/home/user/Music"},
		{"/home/user/Music$Artist->Album->Title", "/home/user/Music"},
		{"$Artist", ""},
	}
	for _, tc := range cases {
		if got := config.SongDirPath(tc.in); got != tc.want {
			t.Fatalf("SongDirPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveProvidersToleratesUnknownNames(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs, `METADATA_PROVIDERS = "itunes, made_up_provider"`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	if got := resolver.Resolve(config.KeyMetadataProviders); got != "itunes, made_up_provider" {
		t.Fatalf("Resolve(METADATA_PROVIDERS) = %q", got)
	}
	if got := resolver.Providers(); len(got) != 2 || got[0] != "itunes" || got[1] != "made_up_provider" {
		t.Fatalf("Providers() = %v", got)
	}
}

func TestResolveProvidersEmptyOverrideWarnsAndFallsBack(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs, `METADATA_PROVIDERS = ""`)

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	resolver := config.NewWithDirs(dirs, logger)
	if got := resolver.Resolve(config.KeyMetadataProviders); got != "itunes, gaana, saavn" {
		t.Fatalf("Resolve(METADATA_PROVIDERS) = %q, want built-in list", got)
	}
	if !strings.Contains(buf.String(), "metadata provider override is empty") {
		t.Fatalf("expected empty-provider warning, got %q", buf.String())
	}
}

func TestResolveProvidersAllUnknownFallsBack(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs, `METADATA_PROVIDERS = "spotify, napster"`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	if got := resolver.Resolve(config.KeyMetadataProviders); got != "itunes, gaana, saavn" {
		t.Fatalf("Resolve(METADATA_PROVIDERS) = %q, want built-in list", got)
	}
}

func TestResolveFirstMatchWinsEvenWhenInvalid(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs,
		`QUALITY = "999"`,
		`QUALITY = "192"`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	// The scan stops at the first matching line; the later valid duplicate is
	// never consulted.
	if got := resolver.Resolve(config.KeyQuality); got != "320" {
		t.Fatalf("Resolve(QUALITY) = %q, want fallback 320", got)
	}
}

func TestResolveKeyMatchAnchoredToToken(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs,
		`QUALITY_MODE = "192"`,
		`QUALITY = "192"`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	if got := resolver.Resolve(config.KeyQuality); got != "192" {
		t.Fatalf("Resolve(QUALITY) = %q, want 192 from the anchored line", got)
	}
}

func TestResolveSkipsCommentsAndStripsQuoting(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs,
		`# QUALITY = "192"`,
		`#QUALITY = "192"`,
		`DEFAULT_FORMAT = 'opus'`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	if got := resolver.Resolve(config.KeyQuality); got != "320" {
		t.Fatalf("commented quality should not apply, got %q", got)
	}
	if got := resolver.Resolve(config.KeyDefaultFormat); got != "opus" {
		t.Fatalf("Resolve(DEFAULT_FORMAT) = %q, want opus", got)
	}
}

func TestResolveUnknownKeyReturnsEmpty(t *testing.T) {
	dirs := testDirs(t)
	resolver := config.NewWithDirs(dirs, logging.NewNop())
	if got := resolver.Resolve("NOT_A_KEY"); got != "" {
		t.Fatalf("Resolve(NOT_A_KEY) = %q, want empty string", got)
	}
}

func TestResolveDetailReportsSource(t *testing.T) {
	dirs := testDirs(t)
	writeConfigFile(t, dirs, `QUALITY = "192"`)

	resolver := config.NewWithDirs(dirs, logging.NewNop())
	if value, fromFile := resolver.ResolveDetail(config.KeyQuality); !fromFile || value != "192" {
		t.Fatalf("ResolveDetail(QUALITY) = %q, %v; want 192 from file", value, fromFile)
	}
	if _, fromFile := resolver.ResolveDetail(config.KeyDefaultFormat); fromFile {
		t.Fatal("expected DEFAULT_FORMAT to come from defaults")
	}
}
