package subtitle

import "time"

// Caption is one ordered subtitle entry. Index is 1-based and assigned
// sequentially at parse time; Start and End carry millisecond precision.
type Caption struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Texts extracts the caption text in order, the shape provider requests use.
func Texts(captions []Caption) []string {
	out := make([]string, len(captions))
	for i, caption := range captions {
		out[i] = caption.Text
	}
	return out
}

// WithTexts returns a copy of captions carrying the supplied replacement
// texts. The caller must have validated that the lengths match.
func WithTexts(captions []Caption, texts []string) []Caption {
	out := make([]Caption, len(captions))
	copy(out, captions)
	for i := range out {
		if i < len(texts) {
			out[i].Text = texts[i]
		}
	}
	return out
}
