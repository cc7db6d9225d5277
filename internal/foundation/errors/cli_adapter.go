package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
)

// CLIErrorAdapter reports the error that ended a command and exits with the
// code of its category.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter writes to stderr and exits through os.Exit. A nil
// logger means slog.Default().
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, out: os.Stderr, exit: os.Exit}
}

// ExitCodeFor returns 0 for nil, the category's code for classified errors
// and 1 otherwise.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if ce, ok := AsClassified(err); ok {
		return ce.Category().ExitCode()
	}
	return 1
}

// FormatError returns the line printed for err. Verbose mode appends the
// context entries other than the path, which the message already names.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	msg := "Error: " + err.Error()
	ce, ok := AsClassified(err)
	if !ok || !a.verbose {
		return msg
	}

	var details []string
	for _, k := range slices.Sorted(maps.Keys(ce.Context())) {
		if k == pathKey {
			continue
		}
		details = append(details, fmt.Sprintf("%s=%v", k, ce.Context()[k]))
	}
	if len(details) == 0 {
		return msg
	}
	return msg + " (" + strings.Join(details, ", ") + ")"
}

// HandleError prints err and exits. It does nothing for nil.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.verbose {
		a.logError(err)
	}
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) logError(err error) {
	ce, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Command failed", slog.String("error", err.Error()))
		return
	}
	attrs := []slog.Attr{slog.String("category", string(ce.Category()))}
	if path, ok := ce.Context().GetString(pathKey); ok {
		attrs = append(attrs, slog.String("path", path))
	}
	if cause := ce.Cause(); cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	a.logger.LogAttrs(context.Background(), slog.LevelError, ce.Message(), attrs...)
}
