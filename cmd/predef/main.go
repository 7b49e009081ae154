package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/predef/cmd/predef/commands"
	"github.com/teranos/predef/config"
	"github.com/teranos/predef/logger"
)

var rootCmd = &cobra.Command{
	Use:   "predef",
	Short: "predef - Python stub generator for scripting namespaces",
	Long: `predef - Generate Python completion stubs from live scripting surfaces.

predef walks registered namespaces (or loads Go packages) into declaration
trees, eliminates members restated from base classes, orders classes so
ancestors precede descendants, and writes one .pypredef stub file per
namespace for editor code completion.

Available commands:
  generate - Generate stub files for configured namespaces
  version  - Show version information

Examples:
  predef generate                   # Generate for namespaces in predef.toml
  predef generate gimp gimpenums    # Generate specific namespaces
  predef generate -p ./...          # Generate from Go packages
  predef generate --watch           # Regenerate on config changes`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if !cmd.Flags().Changed("json-logs") {
			if cfg, err := config.Load(); err == nil {
				jsonLogs = cfg.Log.JSON
			}
		}

		if err := logger.InitializeAt(jsonLogs, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v",
		"Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false,
		"Emit structured JSON logs (default: log.json from predef.toml)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
