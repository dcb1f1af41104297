package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"ytmdl/internal/config"
)

// Result describes the outcome of one readiness check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// MinFreeBytes is the free-space floor below which downloads are likely to
// fail mid-write. 100 MiB covers a full album at 320 kbps.
const MinFreeBytes uint64 = 100 << 20

// CheckConfig reports whether the config directory and file are in place.
func CheckConfig(store *config.Store) Result {
	const name = "Config file"
	if !store.IsFullySetUp() {
		return Result{Name: name, Detail: fmt.Sprintf("%s missing (run 'ytmdl config init')", store.ConfigPath())}
	}
	return Result{Name: name, Passed: true, Detail: store.ConfigPath()}
}

// CheckSongDir verifies the song directory exists and is read/write
// accessible.
func CheckSongDir(path string) Result {
	const name = "Song directory"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has at least minFree
// bytes available to unprivileged writes.
func CheckDiskSpace(path string, minFree uint64) Result {
	const name = "Disk space"
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFree {
		return Result{Name: name, Detail: fmt.Sprintf("%s free on %s, need %s", formatBytes(free), path, formatBytes(minFree))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s free on %s", formatBytes(free), path)}
}

// RunAll executes every check against the resolver's effective settings. The
// song directory setting may carry a subfolder template suffix; only the path
// part is checked on disk.
func RunAll(resolver *config.Resolver) []Result {
	songDir := config.SongDirPath(resolver.Resolve(config.KeySongDir))
	return []Result{
		CheckConfig(resolver.Store()),
		CheckSongDir(songDir),
		CheckDiskSpace(songDir, MinFreeBytes),
	}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
