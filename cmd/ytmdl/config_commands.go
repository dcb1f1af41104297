package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ytmdl/internal/config"
	"ytmdl/internal/preflight"
)

func newConfigCommand(logLevel *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(logLevel))
	configCmd.AddCommand(newConfigShowCommand(logLevel))
	configCmd.AddCommand(newConfigPathCommand(logLevel))
	configCmd.AddCommand(newConfigDoctorCommand(logLevel))

	return configCmd
}

func newConfigInitCommand(logLevel *string) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration template",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore(config.NewDefaults(config.DefaultDirs()), newLogger(*logLevel))

			if !overwrite && store.IsFullySetUp() {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", store.ConfigPath())
			}

			if err := store.EnsureTemplate(); err != nil {
				return fmt.Errorf("create config template: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote configuration template to %s\n", store.ConfigPath())
			fmt.Fprintln(out, "Uncomment a line and edit its value to override a default.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := config.New(newLogger(*logLevel))

			rows := make([][]string, 0, len(config.Keys()))
			for _, key := range config.Keys() {
				value, fromFile := resolver.ResolveDetail(key)
				source := "default"
				if fromFile {
					source = "config file"
				}
				rows = append(rows, []string{key, value, source})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"KEY", "VALUE", "SOURCE"}, rows))
			fmt.Fprintf(out, "Config file: %s\n", resolver.Store().ConfigPath())
			return nil
		},
	}
}

func newConfigPathCommand(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore(config.NewDefaults(config.DefaultDirs()), newLogger(*logLevel))
			fmt.Fprintln(cmd.OutOrStdout(), store.ConfigPath())
			return nil
		},
	}
}

func newConfigDoctorCommand(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the download environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := config.New(newLogger(*logLevel))
			results := preflight.RunAll(resolver)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(os.Stdout)
			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}

			failed := 0
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failed++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
}
