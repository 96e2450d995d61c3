package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderSRTBlocks(t *testing.T) {
	captions, err := Parse([]byte(sampleSub))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	rendered := RenderSRT(captions)
	want := "1\n00:00:01,000 --> 00:00:03,500\nHello\n\n2\n00:00:04,250 --> 00:00:06,700\nWorld\n\n"
	if rendered != want {
		t.Fatalf("RenderSRT mismatch:\ngot  %q\nwant %q", rendered, want)
	}
}

func TestIdentityConversionPreservesCountAndOrder(t *testing.T) {
	captions, err := Parse([]byte(sampleSub))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	dir := t.TempDir()
	writer, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter returned error: %v", err)
	}
	path := writer.OutputPath("sample", "converted")
	if err := writer.WriteSRT(path, captions); err != nil {
		t.Fatalf("WriteSRT returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	blocks := strings.Split(strings.TrimSpace(string(data)), "\n\n")
	if len(blocks) != len(captions) {
		t.Fatalf("expected %d blocks, got %d", len(captions), len(blocks))
	}
	if !strings.Contains(blocks[0], "Hello") || !strings.Contains(blocks[1], "World") {
		t.Fatalf("blocks out of order: %q", string(data))
	}
}

func TestWriterCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	writer, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter returned error: %v", err)
	}
	if info, err := os.Stat(writer.Dir()); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist, err=%v", err)
	}
}

func TestOutputPathNaming(t *testing.T) {
	writer, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter returned error: %v", err)
	}
	got := writer.OutputPath("movie", "zh-tw")
	if filepath.Base(got) != "movie_zh-tw.srt" {
		t.Fatalf("unexpected output name %q", got)
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"/tmp/movie.sub":  "movie",
		"movie.final.sub": "movie.final",
		"plain":           "plain",
	}
	for input, want := range tests {
		if got := Stem(input); got != want {
			t.Errorf("Stem(%q) = %q, want %q", input, got, want)
		}
	}
}
