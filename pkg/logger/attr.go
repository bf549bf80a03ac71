package logger

import (
	"log/slog"
)

// Error records err under "error". A nil error yields an empty Attr, which
// slog handlers skip.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Validator records the validator name under "validator".
func Validator(name string) slog.Attr {
	return slog.String("validator", name)
}

// Field records the name of the validated field or input under "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Valid records the verdict of a validation under "valid".
func Valid(ok bool) slog.Attr {
	return slog.Bool("valid", ok)
}

// Messages records failure messages under "messages".
// An empty list yields an empty Attr.
func Messages(msgs []string) slog.Attr {
	if len(msgs) == 0 {
		return slog.Attr{}
	}
	return slog.Any("messages", msgs)
}

// Options records validator options under "options".
func Options(opts map[string]any) slog.Attr {
	if len(opts) == 0 {
		return slog.Attr{}
	}
	return slog.Any("options", opts)
}
