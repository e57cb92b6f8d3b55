// mshv-bindgen generates Rust FFI bindings for the mshv kernel driver.
//
// It exports a kernel tree's uapi headers, merges them with the hypervisor
// headers shipped alongside this tool into one combined header, runs the
// external bindgen tool over the result, and annotates the generated file
// with the headers it came from.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/russell-islam/mshv/internal/bindgen"
	"github.com/russell-islam/mshv/internal/hvabi"
	"github.com/russell-islam/mshv/internal/kernel"
	"github.com/russell-islam/mshv/internal/unify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mshv-bindgen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	kernelSrc := flag.String("kernel", "", "Linux kernel source path (required)")
	hvHeaders := flag.String("headers", "hv-headers", "Hypervisor headers directory")
	output := flag.String("output", "mshv-bindings/src", "Directory to store bindings.rs")
	bindgenArgs := flag.String("bindgen", "", "Additional bindgen arguments")
	manifestPath := flag.String("manifest", "", "Header manifest YAML (default: built-in mshv header set)")
	logLevel := flag.String("log-level", "info", "Log level (error, info, debug)")
	archFlag := flag.String("arch", string(hvabi.HostArchitecture()), "Architecture for binding generation (x86, arm64)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -kernel <path> [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate Rust bindings from the Hyper-V headers in a Linux kernel tree.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s -kernel /opt/linux-dom0\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -kernel /opt/linux-dom0 -arch arm64\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -kernel /opt/linux-dom0 -bindgen '--with-derive-eq --with-derive-partialeq'\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := setupLogging(*logLevel); err != nil {
		return err
	}

	if *kernelSrc == "" {
		flag.Usage()
		return fmt.Errorf("kernel source path required")
	}

	arch, err := hvabi.ParseArchitecture(*archFlag)
	if err != nil {
		return err
	}

	// Fail before any work starts if a required external tool is missing.
	for _, tool := range []string{"make", "bindgen"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("required tool %q not found in PATH", tool)
		}
	}

	if err := kernel.CheckTree(*kernelSrc); err != nil {
		return err
	}

	manifest, err := hvabi.LoadManifest(*manifestPath)
	if err != nil {
		return err
	}

	slog.Info("installing kernel headers", "kernel", *kernelSrc, "arch", arch.BuildArch())
	hdrDir, err := kernel.Install(*kernelSrc, arch)
	if err != nil {
		return err
	}
	// The installed headers and the combined header inside them are
	// process-scoped; release them on every exit path.
	defer os.RemoveAll(hdrDir)

	sources := unify.Sources(manifest, *hvHeaders, hdrDir)
	combined, err := unify.WriteCombined(hdrDir, sources)
	if err != nil {
		return err
	}

	outFile := filepath.Join(*output, arch.BuildArch(), "bindings.rs")
	slog.Info("generating bindings", "out", outFile)
	if err := bindgen.Run(combined, filepath.Join(hdrDir, "include"), outFile, strings.Fields(*bindgenArgs)); err != nil {
		return err
	}

	if err := bindgen.Annotate(outFile, manifest.HypervisorHeaders); err != nil {
		return err
	}

	slog.Info("bindings generated", "file", outFile)
	return nil
}

func setupLogging(level string) error {
	var l slog.Level
	switch level {
	case "error":
		l = slog.LevelError
	case "info":
		l = slog.LevelInfo
	case "debug":
		l = slog.LevelDebug
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}
