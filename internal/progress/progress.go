// Package progress shows a spinner for long-running external commands.
package progress

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Bar returns a byte-counting spinner on stderr, or nil when stderr is not
// an interactive terminal. Debug logging also disables the spinner since
// both write to the same stream.
func Bar(description string) *progressbar.ProgressBar {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return nil
	}
	return progressbar.DefaultBytes(-1, description)
}

// Tee wraps w so that written bytes also advance bar. A nil bar returns w
// unchanged.
func Tee(w io.Writer, bar *progressbar.ProgressBar) io.Writer {
	if bar == nil {
		return w
	}
	return io.MultiWriter(w, bar)
}

// Finish clears the spinner. Safe on a nil bar.
func Finish(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Close()
	}
}
