package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseTimecode converts a SUB timecode such as "00:00:06.7000000" to a
// duration. Fractional digits beyond milliseconds are truncated; fewer than
// three are right-padded with zeros, so ".7" reads as 700ms.
func parseTimecode(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])

	secText, fracText, _ := strings.Cut(parts[2], ".")
	seconds, errS := strconv.Atoi(secText)

	millis := 0
	var errF error
	if fracText != "" {
		padded := fracText
		if len(padded) > 3 {
			padded = padded[:3]
		}
		for len(padded) < 3 {
			padded += "0"
		}
		millis, errF = strconv.Atoi(padded)
	}

	if errH != nil || errM != nil || errS != nil || errF != nil {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}

	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return total, nil
}

// formatSRTTime renders a duration as the SRT "HH:MM:SS,mmm" form.
func formatSRTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	millis := (d - seconds*time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
