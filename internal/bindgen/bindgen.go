// Package bindgen drives the external bindgen tool against the combined
// header and annotates the generated bindings with their header provenance.
package bindgen

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/russell-islam/mshv/internal/progress"
)

// fixedArgs are applied to every invocation. Caller-supplied extra arguments
// are appended after these and may override them.
var fixedArgs = []string{"--no-doc-comments", "--with-derive-default"}

// Run executes bindgen against the combined header, streaming the generated
// bindings to outFile. includeDir is handed to clang as the include search
// root for the kernel-exported headers. On a non-zero exit the partial output
// file is removed and the error carries bindgen's stderr.
func Run(combined, includeDir, outFile string, extraArgs []string) error {
	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	out, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("create bindings file: %w", err)
	}

	args := make([]string, 0, len(fixedArgs)+len(extraArgs)+4)
	args = append(args, fixedArgs...)
	args = append(args, extraArgs...)
	args = append(args, combined, "--", "-I", includeDir)

	slog.Debug("running bindgen", "args", args, "out", outFile)

	cmd := exec.Command("bindgen", args...)
	bar := progress.Bar("Generating bindings")
	var stderr bytes.Buffer
	cmd.Stdout = progress.Tee(out, bar)
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	progress.Finish(bar)
	closeErr := out.Close()

	if runErr != nil {
		os.Remove(outFile)
		return fmt.Errorf("bindgen: %w: %s", runErr, bytes.TrimSpace(stderr.Bytes()))
	}
	if closeErr != nil {
		os.Remove(outFile)
		return fmt.Errorf("write bindings file: %w", closeErr)
	}

	return nil
}
