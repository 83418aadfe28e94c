package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

func openLogFile(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// newLogger writes to the --log-file when one is given. The TUI owns the
// terminal, so without a file logs are discarded.
func newLogger(deps Deps, path, level string) (*log.Logger, func(), error) {
	lvl := log.InfoLevel
	if level != "" {
		l, err := log.ParseLevel(level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
		}
		lvl = l
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		if deps.OpenLogFile == nil {
			return nil, nil, fmt.Errorf("deps.OpenLogFile is nil")
		}
		f, err := deps.OpenLogFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "block-breaker",
		Level:           lvl,
	})
	return logger, closeFn, nil
}
