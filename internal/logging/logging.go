// Package logging builds the slog logger the commands share.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lobsternotes/lnrouter/internal/config"
)

// New returns a text logger at the named level writing to path, or to w
// when path is empty.  The returned close function must be called when
// the logger is no longer needed.
func New(level, path string, w io.Writer) (*slog.Logger, func() error, error) {

	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	if w == nil {
		w = io.Discard
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closeFn, nil
}
