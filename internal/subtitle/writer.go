package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"subtrans/internal/services"
)

const lockFileName = ".subtrans.lock"

// RenderSRT renders captions as an SRT document: numbered blocks of
// "index\nstart --> end\ntext\n" separated by blank lines.
func RenderSRT(captions []Caption) string {
	var out strings.Builder
	for i, caption := range captions {
		out.WriteString(fmt.Sprintf("%d\n", i+1))
		out.WriteString(formatSRTTime(caption.Start))
		out.WriteString(" --> ")
		out.WriteString(formatSRTTime(caption.End))
		out.WriteByte('\n')
		out.WriteString(caption.Text)
		out.WriteString("\n\n")
	}
	return out.String()
}

// Writer persists rendered SRT files into a single output directory. An
// advisory lock on the directory keeps concurrent runs from interleaving
// partially written files.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir, creating it if missing.
func NewWriter(dir string) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, services.Wrap(services.ErrWrite, "writer", "init", "output directory is empty", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrWrite, "writer", "init", fmt.Sprintf("create output directory %s", dir), err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// OutputPath names an output file after the input stem plus a suffix,
// e.g. "movie" + "ko" -> "<dir>/movie_ko.srt".
func (w *Writer) OutputPath(stem, suffix string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.srt", stem, suffix))
}

// WriteSRT renders captions and writes them to path as UTF-8, holding the
// directory lock for the duration of the write.
func (w *Writer) WriteSRT(path string, captions []Caption) error {
	lock := flock.New(filepath.Join(w.dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return services.Wrap(services.ErrWrite, "writer", "lock", fmt.Sprintf("lock output directory %s", w.dir), err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if err := os.WriteFile(path, []byte(RenderSRT(captions)), 0o644); err != nil {
		return services.Wrap(services.ErrWrite, "writer", "write", fmt.Sprintf("write %s", path), err)
	}
	return nil
}

// Stem returns the input file name without its directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
