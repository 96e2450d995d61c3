package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleSub is a minimal well-formed SUB track used across tests.
const SampleSub = "00:00:01.000,00:00:03.500\nHello there.\n\n00:00:04.250,00:00:06.700\nGeneral Kenobi!\n"

// WriteSubFile writes content as a SUB file and returns its path. Empty
// content writes SampleSub.
func WriteSubFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	if content == "" {
		content = SampleSub
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
