// Package archive persists the record of completed downloads in SQLite.
//
// The downloader consults the archive before fetching so songs already on disk
// are skipped, and the CLI surfaces it for inspection and cleanup. A flock
// advisory lock next to the database keeps concurrent ytmdl invocations from
// writing at the same time.
//
// Schema changes bump the version in schema.go; users clear the archive to
// adopt the new schema.
package archive
