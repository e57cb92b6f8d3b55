// Package hvabi describes the hypervisor ABI surface consumed by the binding
// pipeline: the target architecture vocabulary and the ordered set of headers
// that define the ABI.
package hvabi

import "fmt"

// Architecture is a binding target architecture, in the CLI vocabulary.
type Architecture string

const (
	ArchitectureX86   Architecture = "x86"
	ArchitectureARM64 Architecture = "arm64"
)

// ParseArchitecture maps a user-supplied architecture name to an
// Architecture, accepting the common aliases.
func ParseArchitecture(arch string) (Architecture, error) {
	switch arch {
	case "x86", "x86_64", "amd64":
		return ArchitectureX86, nil
	case "arm64", "aarch64":
		return ArchitectureARM64, nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", arch)
	}
}

// BuildArch returns the name the kernel build system uses for this
// architecture. The kernel spells the x86 target x86_64; arm64 is the same
// in both vocabularies. The build name is also used for the per-architecture
// output directory.
func (a Architecture) BuildArch() string {
	if a == ArchitectureX86 {
		return "x86_64"
	}
	return string(a)
}
