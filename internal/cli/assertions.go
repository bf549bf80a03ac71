package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/checkkit/pkg/validator"
)

// NewAssertionsCmd creates the "assertions" subcommand.
func NewAssertionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assertions",
		Short: "List the validator and assertion names accepted by check",
		Args:  cobra.NoArgs,
		RunE:  runAssertions,
	}

	cmd.Flags().String("format", formatText, "Output format: text | json")

	return cmd
}

func runAssertions(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	rt := runtimeFrom(cmd)
	builtins := validator.BuiltinNames()
	assertions := rt.registry.Names()
	out := cmd.OutOrStdout()

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{
			"validators": builtins,
			"assertions": assertions,
		})
	}

	fmt.Fprintln(out, "Validators:")
	for _, name := range builtins {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "\nAssertions:")
	for _, name := range assertions {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
