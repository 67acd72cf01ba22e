// Package cli provides the medmind command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "medmind",
	Short: "Medical document assistant",
	Long: `MedMind indexes uploaded medical PDFs into a vector store and answers
questions grounded in the retrieved passages.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "medmind.toml", "path to the TOML config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
