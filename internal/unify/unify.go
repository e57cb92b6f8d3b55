// Package unify merges the hypervisor headers and the kernel-exported mshv
// headers into the single combined header consumed by the binding generator.
package unify

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/russell-islam/mshv/internal/hvabi"
)

// CombinedName is the filename of the merged header, written inside the
// installed kernel header directory.
const CombinedName = "combined_mshv.h"

// preamble defines the boolean type the headers expect. The generator parses
// the combined header as plain C, where _Bool has no bool alias without
// <stdbool.h>.
const preamble = "typedef _Bool bool;\n"

// Class identifies where a header source came from.
type Class int

const (
	// ClassHypervisor headers are shipped with this tool and describe the
	// hypervisor ABI itself.
	ClassHypervisor Class = iota
	// ClassKernel headers come from an installed kernel uapi tree and
	// describe the mshv driver's ioctl surface.
	ClassKernel
)

// Source is one header feeding the merge. Name is the filename this source
// supplies: once its body is inlined, #include directives resolving to that
// name are redundant and are dropped from the merged text.
type Source struct {
	Name  string
	Path  string
	Class Class
}

// Sources builds the ordered merge list for a manifest: hypervisor headers
// first, then kernel headers, each in declared order. hvDir is the hypervisor
// headers directory; kernelHdrDir is the root of an installed kernel uapi
// header tree.
func Sources(m hvabi.Manifest, hvDir, kernelHdrDir string) []Source {
	sources := make([]Source, 0, len(m.HypervisorHeaders)+len(m.KernelHeaders))
	for _, name := range m.HypervisorHeaders {
		sources = append(sources, Source{
			Name:  filepath.Base(name),
			Path:  filepath.Join(hvDir, name),
			Class: ClassHypervisor,
		})
	}
	for _, name := range m.KernelHeaders {
		sources = append(sources, Source{
			Name:  filepath.Base(name),
			Path:  filepath.Join(kernelHdrDir, name),
			Class: ClassKernel,
		})
	}
	return sources
}

// includeRe matches a C include directive and captures the included path.
var includeRe = regexp.MustCompile(`^\s*#\s*include\s+["<]([^">]+)[">]`)

// Combine concatenates the source bodies in order behind the portability
// preamble, drops include directives made redundant by inlining, and rewrites
// non-portable macro forms. The result is the complete combined header text.
//
// Stripping and rewriting both run over the fully concatenated text, so a
// directive in an early header referencing a later one is still removed.
func Combine(sources []Source) (string, error) {
	var body strings.Builder
	supplied := map[string]bool{}

	for _, src := range sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("read header: %w", err)
		}
		body.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			body.WriteByte('\n')
		}
		if src.Class == ClassHypervisor {
			supplied[src.Name] = true
		}
	}

	text := stripReincludes(body.String(), supplied)
	text = Rewrite(text)

	return preamble + text, nil
}

// stripReincludes drops include directive lines whose target is already
// inlined in the merged text. Only directives are considered: a comment or
// macro that merely mentions a header filename passes through.
func stripReincludes(text string, supplied map[string]bool) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if m := includeRe.FindStringSubmatch(line); m != nil && supplied[path.Base(m[1])] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// WriteCombined merges sources and writes the result to CombinedName inside
// dir, returning the written path.
func WriteCombined(dir string, sources []Source) (string, error) {
	slog.Debug("generating combined header", "dir", dir, "sources", len(sources))

	text, err := Combine(sources)
	if err != nil {
		return "", err
	}

	combined := filepath.Join(dir, CombinedName)
	if err := os.WriteFile(combined, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write combined header: %w", err)
	}

	slog.Debug("combined header written", "path", combined)
	return combined, nil
}
