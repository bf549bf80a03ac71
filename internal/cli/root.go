// Package cli implements the checkkit command line tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the checkkit command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "checkkit",
		Short: "Validate values and files from the command line",
		Long: `checkkit runs the checkkit validators from the command line.

Settings are read from the environment (or a .env file):
  CHECKKIT_LOG_LEVEL     debug | info | warn | error (default warn)
  CHECKKIT_LOG_FORMAT    text | json (default text)
  CHECKKIT_LANG          preferred message language, e.g. "de-CH, de;q=0.9"
  CHECKKIT_TRANSLATIONS  directory with YAML or JSON message catalogs

Exit codes: 0 valid, 1 validation failed, 2 usage or configuration error.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.Version = version
	root.SetVersionTemplate(fmt.Sprintf("checkkit version %s\n", version))

	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewFileCmd())
	root.AddCommand(NewAssertionsCmd())

	return root
}
