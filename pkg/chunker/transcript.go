package chunker

import (
	"strings"
)

// Segment is a timestamped stretch of transcribed speech.
type Segment struct {
	Text  string
	Start float64 // seconds from the beginning of the media
	End   float64
}

// JoinSegments builds the canonical transcript text that ChunkTranscript
// offsets refer to. Callers persist this exact string as the extracted text.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ChunkTranscript groups timestamped segments into the same parent/child
// hierarchy as Chunk, carrying timestamp ranges on every span. Offsets are
// into the text produced by JoinSegments.
func ChunkTranscript(segments []Segment, cfg Config) []Span {
	if cfg.ParentTarget <= 0 {
		cfg = DefaultConfig()
	}

	type placed struct {
		Segment
		start int
		end   int
	}

	var items []placed
	var sb strings.Builder
	for _, s := range segments {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		start := sb.Len()
		sb.WriteString(t)
		items = append(items, placed{Segment: s, start: start, end: sb.Len()})
	}
	if len(items) == 0 {
		return []Span{}
	}
	text := sb.String()

	var blocks []block
	var pending []placed
	pendingLen := 0

	flush := func() {
		if len(pending) == 0 {
			return
		}
		start := pending[0].start
		end := pending[len(pending)-1].end
		tsStart := pending[0].Start
		tsEnd := pending[len(pending)-1].End
		blocks = append(blocks, block{
			start:   start,
			end:     end,
			tsStart: &tsStart,
			tsEnd:   &tsEnd,
			content: text[start:end],
		})
		pending = nil
		pendingLen = 0
	}

	for _, it := range items {
		segLen := it.end - it.start
		if segLen > cfg.ParentMax {
			// Oversized segment: close the current parent, then split the
			// segment into word-aligned pieces that all carry its timestamps.
			flush()
			for _, piece := range wordSplit(text, it.start, it.end, cfg.ParentTarget) {
				tsStart, tsEnd := it.Start, it.End
				blocks = append(blocks, block{
					start:   piece[0],
					end:     piece[1],
					tsStart: &tsStart,
					tsEnd:   &tsEnd,
					content: text[piece[0]:piece[1]],
				})
			}
			continue
		}
		if pendingLen > 0 && pendingLen+segLen > cfg.ParentTarget {
			flush()
		}
		pending = append(pending, it)
		pendingLen += segLen
	}
	flush()

	return assemble(blocks, cfg)
}
