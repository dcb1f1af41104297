package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ytmdl/internal/logging"
)

// Entry records one completed download.
type Entry struct {
	ID           string
	VideoURL     string
	Title        string
	Artist       string
	Album        string
	Format       string
	Quality      string
	Path         string
	DownloadedAt time.Time
}

// ErrLocked indicates another ytmdl process holds the archive writer lock.
var ErrLocked = errors.New("archive is locked by another process")

// Store manages archive persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the archive database inside dir, acquiring
// the writer lock so only one process mutates the archive at a time.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("archive directory must be set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory %q: %w", dir, err)
	}

	lock := flock.New(filepath.Join(dir, "archive.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire archive lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(dir, "archive.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		lock:   lock,
		path:   dbPath,
		logger: logging.NewComponentLogger(logger, "archive"),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close releases the database connection and the writer lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
		s.lock = nil
	}
	return err
}

// Path returns the on-disk location of the archive database.
func (s *Store) Path() string {
	return s.path
}

// Add records a completed download. The entry ID and timestamp are assigned
// here; the title is normalized for display when the tagger supplied a raw
// filename-style string.
func (s *Store) Add(ctx context.Context, entry Entry) (Entry, error) {
	entry.VideoURL = strings.TrimSpace(entry.VideoURL)
	if entry.VideoURL == "" {
		return Entry{}, errors.New("video URL must be set")
	}
	entry.ID = uuid.NewString()
	entry.Title = NormalizeTitle(entry.Title)
	if entry.DownloadedAt.IsZero() {
		entry.DownloadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO downloads (
            id, video_url, title, artist, album, format, quality, path, downloaded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.VideoURL,
		entry.Title,
		entry.Artist,
		entry.Album,
		entry.Format,
		entry.Quality,
		entry.Path,
		entry.DownloadedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert download: %w", err)
	}

	s.logger.Debug("recorded download",
		logging.String("video_url", entry.VideoURL),
		logging.String("title", entry.Title))

	return entry, nil
}

// Contains reports whether a download for the given video URL is recorded.
func (s *Store) Contains(ctx context.Context, videoURL string) (bool, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return false, nil
	}
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM downloads WHERE video_url = ?", videoURL,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query download: %w", err)
	}
	return count > 0, nil
}

// List returns all recorded downloads, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_url, title, artist, album, format, quality, path, downloaded_at
         FROM downloads ORDER BY downloaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var downloadedAt string
		if err := rows.Scan(
			&entry.ID, &entry.VideoURL, &entry.Title, &entry.Artist, &entry.Album,
			&entry.Format, &entry.Quality, &entry.Path, &downloadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan download: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, downloadedAt); parseErr == nil {
			entry.DownloadedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate downloads: %w", err)
	}
	return entries, nil
}

// Clear removes every recorded download and returns the number removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM downloads")
	if err != nil {
		return 0, fmt.Errorf("clear downloads: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared downloads: %w", err)
	}
	s.logger.Debug("cleared archive", logging.Int64("removed", removed))
	return removed, nil
}

// Count returns the number of recorded downloads.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM downloads").Scan(&count); err != nil {
		return 0, fmt.Errorf("count downloads: %w", err)
	}
	return count, nil
}
