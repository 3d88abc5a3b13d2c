package transcribe

import (
	"regexp"
	"strconv"
	"strings"
)

var stampPattern = regexp.MustCompile(`\[(\d{1,2}):(\d{2})(?::(\d{2}))?\]`)

// ParseStamped converts a transcript whose paragraphs are prefixed with
// [mm:ss] or [hh:mm:ss] markers into timestamped segments. A segment ends
// where the next one begins; the last segment's end equals its start since
// the media duration is unknown. Text without any markers becomes a
// transcript with a single untimed segment.
func ParseStamped(raw string) Transcript {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Transcript{}
	}

	matches := stampPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return Transcript{
			Text:     raw,
			Segments: []Segment{{Text: raw}},
		}
	}

	var segments []Segment
	for i, m := range matches {
		start := stampSeconds(raw, m)

		textStart := m[1]
		textEnd := len(raw)
		if i+1 < len(matches) {
			textEnd = matches[i+1][0]
		}
		text := strings.TrimSpace(raw[textStart:textEnd])
		if text == "" {
			continue
		}
		segments = append(segments, Segment{Text: text, Start: start, End: start})
	}

	for i := range segments {
		if i+1 < len(segments) {
			segments[i].End = segments[i+1].Start
		}
	}

	return Transcript{Text: joinSegmentText(segments), Segments: segments}
}

func stampSeconds(raw string, m []int) float64 {
	group := func(n int) int {
		if m[2*n] < 0 {
			return -1
		}
		v, _ := strconv.Atoi(raw[m[2*n]:m[2*n+1]])
		return v
	}

	a, b, c := group(1), group(2), group(3)
	if c >= 0 {
		return float64(a*3600 + b*60 + c)
	}
	return float64(a*60 + b)
}

func joinSegmentText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, "\n\n")
}
