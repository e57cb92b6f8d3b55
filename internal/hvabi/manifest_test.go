package hvabi

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestDefault(t *testing.T) {
	m, err := LoadManifest("")
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}

	expected := []string{"hvgdk_mini.h", "hvgdk.h", "hvhdk_mini.h", "hvhdk.h"}
	if len(m.HypervisorHeaders) != len(expected) {
		t.Fatalf("expected %d hypervisor headers, got %d", len(expected), len(m.HypervisorHeaders))
	}
	for i, name := range expected {
		if m.HypervisorHeaders[i] != name {
			t.Errorf("hypervisor header %d: expected %q, got %q", i, name, m.HypervisorHeaders[i])
		}
	}

	if len(m.KernelHeaders) != 1 || m.KernelHeaders[0] != "include/linux/mshv.h" {
		t.Errorf("unexpected kernel headers: %v", m.KernelHeaders)
	}
}

func TestLoadManifestPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := "hypervisor_headers:\n  - custom.h\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}

	if len(m.HypervisorHeaders) != 1 || m.HypervisorHeaders[0] != "custom.h" {
		t.Errorf("unexpected hypervisor headers: %v", m.HypervisorHeaders)
	}
	// Omitted lists keep their defaults.
	if len(m.KernelHeaders) != 1 || m.KernelHeaders[0] != "include/linux/mshv.h" {
		t.Errorf("unexpected kernel headers: %v", m.KernelHeaders)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("hypervisor_headers: {not: a list}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Error("expected error for malformed manifest")
	}
}
