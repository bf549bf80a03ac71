package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/checkkit/pkg/validator"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// report is the outcome of validating one value.
type report struct {
	Subject  string   `json:"subject"`
	Value    any      `json:"value,omitempty"`
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}

func newReport(subject string, value any, res validator.Result) report {
	return report{
		Subject:  subject,
		Value:    value,
		Valid:    res.Valid,
		Messages: res.Messages(),
	}
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return exitError(ExitUsage, "invalid format %q: must be %q or %q", format, formatText, formatJSON)
	}
}

func printReports(w io.Writer, reports []report, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		if r.Valid {
			fmt.Fprintf(w, "%s: valid\n", r.Subject)
			continue
		}
		fmt.Fprintf(w, "%s: invalid\n", r.Subject)
		for _, msg := range r.Messages {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
	return nil
}

func allValid(reports []report) bool {
	for _, r := range reports {
		if !r.Valid {
			return false
		}
	}
	return true
}
