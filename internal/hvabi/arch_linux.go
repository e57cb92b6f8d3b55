//go:build linux

package hvabi

import "golang.org/x/sys/unix"

// HostArchitecture returns the architecture of the running machine, used as
// the default binding target. Falls back to x86 if uname fails.
func HostArchitecture() Architecture {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ArchitectureX86
	}

	switch unix.ByteSliceToString(uts.Machine[:]) {
	case "aarch64", "arm64":
		return ArchitectureARM64
	default:
		return ArchitectureX86
	}
}
