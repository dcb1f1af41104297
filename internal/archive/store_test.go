package archive_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ytmdl/internal/archive"
	"ytmdl/internal/logging"
)

func mustOpen(t *testing.T, dir string) *archive.Store {
	t.Helper()
	store, err := archive.Open(dir, logging.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndContains(t *testing.T) {
	store := mustOpen(t, t.TempDir())
	ctx := context.Background()

	entry, err := store.Add(ctx, archive.Entry{
		VideoURL: "https://youtu.be/abc123",
		Title:    "never gonna give you up",
		Artist:   "Rick Astley",
		Format:   "mp3",
		Quality:  "320",
		Path:     "/music/never-gonna-give-you-up.mp3",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("expected entry ID to be assigned")
	}
	if entry.Title != "Never Gonna Give You Up" {
		t.Fatalf("expected normalized title, got %q", entry.Title)
	}
	if entry.DownloadedAt.IsZero() {
		t.Fatal("expected timestamp to be assigned")
	}

	found, err := store.Contains(ctx, "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !found {
		t.Fatal("expected recorded download to be found")
	}

	found, err = store.Contains(ctx, "https://youtu.be/other")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if found {
		t.Fatal("unexpected hit for unrecorded URL")
	}
}

func TestAddRequiresVideoURL(t *testing.T) {
	store := mustOpen(t, t.TempDir())
	if _, err := store.Add(context.Background(), archive.Entry{Title: "no url"}); err == nil {
		t.Fatal("expected error when video URL missing")
	}
}

func TestListNewestFirst(t *testing.T) {
	store := mustOpen(t, t.TempDir())
	ctx := context.Background()

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()
	if _, err := store.Add(ctx, archive.Entry{VideoURL: "u1", Title: "first", DownloadedAt: older}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(ctx, archive.Entry{VideoURL: "u2", Title: "second", DownloadedAt: newer}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].VideoURL != "u2" || entries[1].VideoURL != "u1" {
		t.Fatalf("expected newest first, got %v then %v", entries[0].VideoURL, entries[1].VideoURL)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	store := mustOpen(t, t.TempDir())
	ctx := context.Background()

	if _, err := store.Add(ctx, archive.Entry{VideoURL: "u1", Title: "one"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(ctx, archive.Entry{VideoURL: "u2", Title: "two"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty archive, got %d entries", count)
	}
}

func TestOpenRefusesSecondWriter(t *testing.T) {
	dir := t.TempDir()
	store := mustOpen(t, dir)

	if _, err := archive.Open(dir, logging.NewNop()); !errors.Is(err, archive.ErrLocked) {
		t.Fatalf("expected ErrLocked for second writer, got %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	reopened, err := archive.Open(dir, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen after close failed: %v", err)
	}
	_ = reopened.Close()
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	store := mustOpen(t, dir)
	ctx := context.Background()

	if _, err := store.Add(ctx, archive.Entry{VideoURL: "u1", Title: "kept"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := mustOpen(t, dir)
	found, err := reopened.Contains(ctx, "u1")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !found {
		t.Fatal("expected entry to survive reopen")
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"never_gonna-give.you.up", "Never Gonna Give You Up"},
		{"  hello   world ", "Hello World"},
		{"", "Unknown Title"},
		{"track (live)", "Track (Live)"},
	}
	for _, tc := range cases {
		if got := archive.NormalizeTitle(tc.in); got != tc.want {
			t.Fatalf("NormalizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
