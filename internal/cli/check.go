package cli

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/checkkit/pkg/logger"
)

// NewCheckCmd creates the "check" subcommand.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <validator> <value>",
		Short: "Validate a single value with a named validator",
		Long: `Validate a single value with a builtin validator or an assertion.

The value is read as a YAML scalar, so 5 is an integer, 2.5 a float and
true a boolean. Quote it ('5') or pass --raw to keep it a string.`,
		Example: `  checkkit check lessThan 5 --opt max=10
  checkkit check stringLength "hello" --opt min=2 --opt max=4
  checkkit check email alice@example.com --format json
  checkkit check between 7 --options bounds.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: runCheck,
	}

	cmd.Flags().StringArray("opt", nil, "Validator option as key=value (repeatable)")
	cmd.Flags().String("options", "", "YAML file with validator options")
	cmd.Flags().Bool("raw", false, "Treat the value as a plain string")
	cmd.Flags().String("format", formatText, "Output format: text | json")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	name, rawValue := args[0], args[1]
	optPairs, _ := cmd.Flags().GetStringArray("opt")
	optionsFile, _ := cmd.Flags().GetString("options")
	raw, _ := cmd.Flags().GetBool("raw")
	format, _ := cmd.Flags().GetString("format")

	if err := checkFormat(format); err != nil {
		return err
	}

	rt := runtimeFrom(cmd)
	ctx := cmd.Context()

	options, err := loadOptions(optionsFile, optPairs)
	if err != nil {
		return exitError(ExitUsage, "%v", err)
	}

	v, err := rt.factory.Build(name, options)
	if err != nil {
		rt.logger.ErrorContext(ctx, "cannot build validator", logger.Validator(name), logger.Options(options), logger.Error(err))
		return exitError(ExitUsage, "%v", err)
	}

	var value any = rawValue
	if !raw {
		value = parseScalar(rawValue)
	}

	res := v.Validate(value)
	rt.logger.DebugContext(ctx, "value checked",
		logger.Validator(name),
		logger.Valid(res.Valid),
		logger.Messages(res.Messages()),
	)

	if err := printReports(cmd.OutOrStdout(), []report{newReport(name, value, res)}, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !res.Valid {
		return exitError(ExitValidation, "validation failed")
	}
	return nil
}

// loadOptions merges the options file with --opt pairs. Pairs win.
func loadOptions(path string, pairs []string) (map[string]any, error) {
	options := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("options file not found: %s", path)
			}
			return nil, fmt.Errorf("reading options file: %w", err)
		}
		var fromFile map[string]any
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parsing options file %s: %w", path, err)
		}
		maps.Copy(options, fromFile)
	}

	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q: expected key=value", pair)
		}
		options[key] = parseScalar(val)
	}

	if len(options) == 0 {
		return nil, nil
	}
	return options, nil
}

// parseScalar decodes s as a YAML scalar. Anything else, including input
// that does not parse, is returned unchanged as a string.
func parseScalar(s string) any {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return s
	}
	if len(doc.Content) != 1 || doc.Content[0].Kind != yaml.ScalarNode {
		return s
	}

	var v any
	if err := doc.Content[0].Decode(&v); err != nil {
		return s
	}
	return v
}
