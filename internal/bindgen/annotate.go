package bindgen

import (
	"fmt"
	"os"
	"strings"
)

// Annotate splices a provenance comment into the bindings file immediately
// after its first line, naming the hypervisor headers that were merged into
// the combined header, in merge order. The file is rewritten in place.
func Annotate(path string, headers []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bindings file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("bindings file %q is empty", path)
	}

	block := make([]string, 0, len(headers)+3)
	block = append(block, "/*\n")
	block = append(block, " * Hypervisor headers used for these bindings are as follows:\n")
	for _, header := range headers {
		block = append(block, fmt.Sprintf(" * %s\n", header))
	}
	block = append(block, " */\n")

	lines := strings.SplitAfter(string(data), "\n")
	if !strings.HasSuffix(lines[0], "\n") {
		lines[0] += "\n"
	}
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[0])
	out = append(out, block...)
	out = append(out, lines[1:]...)

	if err := os.WriteFile(path, []byte(strings.Join(out, "")), 0o644); err != nil {
		return fmt.Errorf("write bindings file: %w", err)
	}
	return nil
}
