package kernel

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/mod/semver"
)

// MinVersion is the oldest kernel release that exports the mshv uapi header
// (include/uapi/linux/mshv.h). Older trees export nothing for headers_install
// to pick up, so they are rejected before any work starts.
const MinVersion = "v6.6"

var versionFieldRe = regexp.MustCompile(`(?m)^(VERSION|PATCHLEVEL|SUBLEVEL)\s*=\s*(\d*)\s*$`)

// TreeVersion reads the kernel version from the Makefile at the root of the
// source tree and returns it in semver form ("v6.6.0").
func TreeVersion(src string) (string, error) {
	makefile := filepath.Join(src, "Makefile")
	data, err := os.ReadFile(makefile)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", makefile, err)
	}

	fields := map[string]string{}
	for _, m := range versionFieldRe.FindAllStringSubmatch(string(data), -1) {
		fields[m[1]] = m[2]
	}

	version, ok := fields["VERSION"]
	if !ok || version == "" {
		return "", fmt.Errorf("%s does not declare a kernel version", makefile)
	}
	patchlevel, ok := fields["PATCHLEVEL"]
	if !ok || patchlevel == "" {
		return "", fmt.Errorf("%s does not declare a kernel patchlevel", makefile)
	}
	sublevel := fields["SUBLEVEL"]
	if sublevel == "" {
		sublevel = "0"
	}

	return fmt.Sprintf("v%s.%s.%s", version, patchlevel, sublevel), nil
}

// CheckTree validates that src is a kernel source tree recent enough to
// export the mshv uapi surface.
func CheckTree(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("invalid kernel path %q: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid kernel path %q: not a directory", src)
	}

	version, err := TreeVersion(src)
	if err != nil {
		return err
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("kernel tree %q has malformed version %q", src, version)
	}
	if semver.Compare(version, MinVersion) < 0 {
		return fmt.Errorf("kernel tree %q is %s; mshv bindings need %s or newer", src, version, MinVersion)
	}

	return nil
}
