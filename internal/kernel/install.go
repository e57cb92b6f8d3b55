// Package kernel installs a kernel source tree's exported uapi headers for a
// target architecture, using the kernel's own headers_install target.
package kernel

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/russell-islam/mshv/internal/hvabi"
	"github.com/russell-islam/mshv/internal/progress"
)

// Install exports the uapi headers for arch from the kernel source tree at
// src into a fresh temporary directory and returns its path. The caller owns
// the directory and must remove it when the pipeline finishes, on every exit
// path. A non-zero exit from make is fatal and carries make's stderr.
func Install(src string, arch hvabi.Architecture) (string, error) {
	hdrDir, err := os.MkdirTemp("", "linux")
	if err != nil {
		return "", fmt.Errorf("create header directory: %w", err)
	}

	slog.Debug("installing kernel headers", "dir", hdrDir, "arch", arch.BuildArch(), "src", src)

	cmd := exec.Command("make", "headers_install",
		"ARCH="+arch.BuildArch(),
		"INSTALL_HDR_PATH="+hdrDir,
		"-C", src,
	)

	bar := progress.Bar("Installing kernel headers")
	var stderr bytes.Buffer
	cmd.Stdout = progress.Tee(io.Discard, bar)
	cmd.Stderr = &stderr

	err = cmd.Run()
	progress.Finish(bar)
	if err != nil {
		os.RemoveAll(hdrDir)
		return "", fmt.Errorf("make headers_install: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	slog.Debug("kernel headers installed", "dir", hdrDir)
	return hdrDir, nil
}
