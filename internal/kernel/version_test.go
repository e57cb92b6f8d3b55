package kernel

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMakefile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Makefile"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestTreeVersion(t *testing.T) {
	tests := []struct {
		name     string
		makefile string
		expected string
	}{
		{
			name:     "release",
			makefile: "# SPDX-License-Identifier: GPL-2.0\nVERSION = 6\nPATCHLEVEL = 6\nSUBLEVEL = 52\nEXTRAVERSION =\n",
			expected: "v6.6.52",
		},
		{
			name:     "no sublevel value",
			makefile: "VERSION = 6\nPATCHLEVEL = 12\nSUBLEVEL =\n",
			expected: "v6.12.0",
		},
		{
			name:     "unspaced assignment",
			makefile: "VERSION=6\nPATCHLEVEL=8\nSUBLEVEL=1\n",
			expected: "v6.8.1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeMakefile(t, tc.makefile)
			version, err := TreeVersion(dir)
			if err != nil {
				t.Fatalf("TreeVersion failed: %v", err)
			}
			if version != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, version)
			}
		})
	}
}

func TestTreeVersionMissingFields(t *testing.T) {
	dir := writeMakefile(t, "all:\n\t$(MAKE) -C build\n")
	if _, err := TreeVersion(dir); err == nil {
		t.Error("expected error for Makefile without version fields")
	}
}

func TestCheckTree(t *testing.T) {
	ok := writeMakefile(t, "VERSION = 6\nPATCHLEVEL = 6\nSUBLEVEL = 0\n")
	if err := CheckTree(ok); err != nil {
		t.Errorf("CheckTree rejected a v6.6 tree: %v", err)
	}

	newer := writeMakefile(t, "VERSION = 6\nPATCHLEVEL = 12\nSUBLEVEL = 3\n")
	if err := CheckTree(newer); err != nil {
		t.Errorf("CheckTree rejected a v6.12 tree: %v", err)
	}

	old := writeMakefile(t, "VERSION = 5\nPATCHLEVEL = 15\nSUBLEVEL = 0\n")
	if err := CheckTree(old); err == nil {
		t.Error("CheckTree accepted a v5.15 tree")
	}
}

func TestCheckTreeInvalidPath(t *testing.T) {
	if err := CheckTree(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("CheckTree accepted a missing path")
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckTree(file); err == nil {
		t.Error("CheckTree accepted a regular file")
	}
}
