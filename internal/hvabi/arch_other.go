//go:build !linux

package hvabi

import "runtime"

// HostArchitecture returns the architecture of the running machine, used as
// the default binding target.
func HostArchitecture() Architecture {
	if runtime.GOARCH == "arm64" {
		return ArchitectureARM64
	}
	return ArchitectureX86
}
