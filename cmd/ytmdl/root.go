package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "ytmdl",
		Short:         "ytmdl configuration utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log verbosity (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCommand(&logLevel))
	rootCmd.AddCommand(newArchiveCommand(&logLevel))

	return rootCmd
}
