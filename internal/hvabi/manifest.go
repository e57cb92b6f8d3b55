package hvabi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest lists the headers that make up the hypervisor ABI surface, in
// merge order. Hypervisor headers are shipped alongside this tool and named
// relative to the hypervisor headers directory; kernel headers are named
// relative to the root of an installed kernel uapi header tree.
//
// Order is significant: a header must not redefine symbols supplied by an
// earlier entry.
type Manifest struct {
	HypervisorHeaders []string `yaml:"hypervisor_headers"`
	KernelHeaders     []string `yaml:"kernel_headers"`
}

// DefaultManifest returns the built-in header set for the mshv driver.
func DefaultManifest() Manifest {
	return Manifest{
		HypervisorHeaders: []string{
			"hvgdk_mini.h",
			"hvgdk.h",
			"hvhdk_mini.h",
			"hvhdk.h",
		},
		KernelHeaders: []string{
			"include/linux/mshv.h",
		},
	}
}

func (m *Manifest) normalize() {
	defaults := DefaultManifest()
	if len(m.HypervisorHeaders) == 0 {
		m.HypervisorHeaders = defaults.HypervisorHeaders
	}
	if len(m.KernelHeaders) == 0 {
		m.KernelHeaders = defaults.KernelHeaders
	}
}

// LoadManifest reads a header manifest from path. An empty path returns the
// built-in header set; lists omitted from the file keep their defaults.
func LoadManifest(path string) (Manifest, error) {
	if path == "" {
		return DefaultManifest(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %q: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %q: %w", path, err)
	}
	m.normalize()
	return m, nil
}
