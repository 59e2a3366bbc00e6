// Package cli provides the command-line interface of behave.
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "behave",
	Short: "behave runs example suites with nested setup and teardown hooks.",
	Long: `behave runs example suites with nested setup and teardown hooks. ` +
		`Currently, it runs the bundled demo suites and can record their ` +
		`results and serve a live monitor.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	bindDemoFlags(demoCmd)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
