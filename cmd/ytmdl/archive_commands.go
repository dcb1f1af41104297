package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ytmdl/internal/archive"
	"ytmdl/internal/config"
)

func newArchiveCommand(logLevel *string) *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Download archive maintenance",
	}

	archiveCmd.AddCommand(newArchiveListCommand(logLevel))
	archiveCmd.AddCommand(newArchiveClearCommand(logLevel))

	return archiveCmd
}

func openArchive(logLevel string) (*archive.Store, error) {
	defaults := config.NewDefaults(config.DefaultDirs())
	store, err := archive.Open(defaults.ConfigDir, newLogger(logLevel))
	if err != nil {
		return nil, fmt.Errorf("open download archive: %w", err)
	}
	return store, nil
}

func newArchiveListCommand(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded downloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openArchive(*logLevel)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list downloads: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Archive is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Title,
					entry.Artist,
					entry.Format,
					entry.Quality,
					entry.DownloadedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"TITLE", "ARTIST", "FORMAT", "QUALITY", "DOWNLOADED"},
				rows,
				3,
			))
			return nil
		},
	}
}

func newArchiveClearCommand(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every recorded download",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openArchive(*logLevel)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear archive: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recorded download(s)\n", removed)
			return nil
		},
	}
}
