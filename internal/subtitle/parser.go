package subtitle

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	"subtrans/internal/services"
)

// ParseFile reads and parses a SUB source from disk.
func ParseFile(path string) ([]Caption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "subtitle", "read", fmt.Sprintf("read %s", path), err)
	}
	captions, err := Parse(data)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "subtitle", "parse", fmt.Sprintf("parse %s", path), err)
	}
	return captions, nil
}

// Parse extracts ordered captions from raw SUB bytes. Input is decoded as
// UTF-8 first, then Shift_JIS for legacy Japanese sources. It fails when no
// timestamped entry with text can be found.
func Parse(data []byte) ([]Caption, error) {
	text, err := decode(data)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	captions := make([]Caption, 0, len(lines)/3)

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		start, end, ok := parseTimestampLine(line)
		if !ok {
			i++
			continue
		}

		// Caption text is every following non-empty line up to a blank line
		// or the next timestamp line. Some sources omit blank separators.
		i++
		var body strings.Builder
		for i < len(lines) {
			next := strings.TrimSpace(lines[i])
			if next == "" {
				break
			}
			if _, _, isTimestamp := parseTimestampLine(next); isTimestamp {
				break
			}
			body.WriteString(next)
			i++
		}
		if body.Len() == 0 {
			continue
		}

		captions = append(captions, Caption{
			Index: len(captions) + 1,
			Start: start,
			End:   end,
			Text:  body.String(),
		})
	}

	if len(captions) == 0 {
		return nil, fmt.Errorf("no subtitle entries found")
	}
	return captions, nil
}

// parseTimestampLine recognizes "start,end" lines where each field is a
// HH:MM:SS timecode with a fractional part. Lines without both a comma and a
// period are caption text, never timestamps.
func parseTimestampLine(line string) (start, end time.Duration, ok bool) {
	if !strings.Contains(line, ",") || !strings.Contains(line, ".") {
		return 0, 0, false
	}
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return 0, 0, false
	}
	start, err := parseTimecode(fields[0])
	if err != nil {
		return 0, 0, false
	}
	end, err = parseTimecode(fields[1])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func decode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty source")
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("source is neither valid UTF-8 nor Shift_JIS: %w", err)
	}
	return string(decoded), nil
}
