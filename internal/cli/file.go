package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/checkkit/pkg/file"
	"github.com/dmitrymomot/checkkit/pkg/logger"
	"github.com/dmitrymomot/checkkit/pkg/validator"
)

// NewFileCmd creates the "file" subcommand.
func NewFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <path>...",
		Short: "Validate files on disk against size, name and media type rules",
		Long: `Validate files on disk as if they were uploads.

The media type of every file is detected from its content. Sizes accept
human readable values such as 512KB or 10MiB.`,
		Example: `  checkkit file avatar.png --max-size 2MiB --mime image/*
  checkkit file report.pdf notes.txt --mime pdf --strict-mime --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFile,
	}

	cmd.Flags().String("min-size", "", "Minimum file size, e.g. 1KB")
	cmd.Flags().String("max-size", "", "Maximum file size, e.g. 10MiB")
	cmd.Flags().Int("max-name-length", 0, "Maximum file name length in characters")
	cmd.Flags().StringSlice("mime", nil, "Accepted media types, wildcards or extensions")
	cmd.Flags().Bool("strict-mime", false, "Match media types exactly")
	cmd.Flags().String("format", formatText, "Output format: text | json")

	return cmd
}

func runFile(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	cfg, err := fileConfigFromFlags(cmd)
	if err != nil {
		return exitError(ExitUsage, "%v", err)
	}
	v, err := validator.NewFile(cfg)
	if err != nil {
		return exitError(ExitUsage, "%v", err)
	}

	rt := runtimeFrom(cmd)
	ctx := cmd.Context()

	reports := make([]report, 0, len(args))
	for _, path := range args {
		desc, err := file.FromPath(path)
		if err != nil {
			switch {
			case errors.Is(err, file.ErrFileNotFound):
				return exitError(ExitUsage, "file not found: %s", path)
			case errors.Is(err, file.ErrIsDirectory):
				return exitError(ExitUsage, "not a file: %s", path)
			default:
				return exitError(ExitUsage, "%v", err)
			}
		}

		res := v.Validate(desc)
		rt.logger.DebugContext(ctx, "file checked",
			logger.Field(path),
			logger.Valid(res.Valid),
			slog.Int64("size", desc.Bytes),
			slog.String("media_type", desc.MediaType),
		)
		reports = append(reports, newReport(path, nil, res))
	}

	if err := printReports(cmd.OutOrStdout(), reports, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !allValid(reports) {
		return exitError(ExitValidation, "validation failed")
	}
	return nil
}

func fileConfigFromFlags(cmd *cobra.Command) (validator.FileConfig, error) {
	minSize, _ := cmd.Flags().GetString("min-size")
	maxSize, _ := cmd.Flags().GetString("max-size")
	nameLen, _ := cmd.Flags().GetInt("max-name-length")
	mimeTypes, _ := cmd.Flags().GetStringSlice("mime")
	strict, _ := cmd.Flags().GetBool("strict-mime")

	lo, err := parseSize("min-size", minSize)
	if err != nil {
		return validator.FileConfig{}, err
	}
	hi, err := parseSize("max-size", maxSize)
	if err != nil {
		return validator.FileConfig{}, err
	}

	return validator.FileConfig{
		MinSize:           lo,
		MaxSize:           hi,
		MaxFileNameLength: nameLen,
		MimeTypes:         mimeTypes,
		StrictMimeTypes:   strict,
	}, nil
}

func parseSize(flag, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", flag, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("--%s: %s is too large", flag, s)
	}
	return int64(n), nil
}
