package chunker

import (
	"strings"
)

const (
	TypeParent = "parent"
	TypeChild  = "child"
)

// Span is one chunk of a document before persistence. ParentIndex points at
// the parent's position in the returned slice — database ids do not exist
// yet at chunking time.
type Span struct {
	Content        string
	ChunkType      string
	ChunkIndex     int
	ParentIndex    *int
	CharStart      int
	CharEnd        int
	PageNumber     *int
	SectionHeading *string
	TimestampStart *float64
	TimestampEnd   *float64
}

type Config struct {
	ParentTarget int // preferred parent span length
	ParentMax    int // hard split above this
	ChildMax     int // children are even splits no longer than this
}

func DefaultConfig() Config {
	return Config{
		ParentTarget: 1000,
		ParentMax:    2000,
		ChildMax:     400,
	}
}

// Chunk splits text into a two-level parent/child hierarchy. Parents respect
// paragraph and page (form feed) boundaries around the target size; each
// parent is then evenly split into children. Output order is parent followed
// by its children, with sequential chunk indexes across the whole list.
func Chunk(text string, cfg Config) []Span {
	if cfg.ParentTarget <= 0 {
		cfg = DefaultConfig()
	}
	if strings.TrimSpace(text) == "" {
		return []Span{}
	}

	blocks := parentBlocks(text, cfg)
	return assemble(blocks, cfg)
}

// block is a parent-sized region of the input with its metadata.
type block struct {
	start   int
	end     int
	page    *int
	heading *string
	tsStart *float64
	tsEnd   *float64
	content string
}

func parentBlocks(text string, cfg Config) []block {
	var blocks []block

	pages := splitPages(text)
	multiPage := len(pages) > 1

	for pi, p := range pages {
		var page *int
		if multiPage {
			n := pi + 1
			page = &n
		}

		var heading *string
		var pending []paragraph // accumulated paragraphs for the current parent
		pendingLen := 0

		flush := func() {
			if len(pending) == 0 {
				return
			}
			start := pending[0].start
			end := pending[len(pending)-1].end
			blocks = append(blocks, block{
				start:   start,
				end:     end,
				page:    page,
				heading: heading,
				content: text[start:end],
			})
			pending = nil
			pendingLen = 0
		}

		for _, para := range splitParagraphs(text, p.start, p.end) {
			if h, ok := detectHeading(para.text()); ok {
				flush()
				heading = &h
			}

			paraLen := para.end - para.start
			if paraLen > cfg.ParentMax {
				// Oversized paragraph: close the current parent, then split
				// the paragraph into contiguous word-aligned pieces so no
				// text is lost.
				flush()
				for _, piece := range wordSplit(text, para.start, para.end, cfg.ParentTarget) {
					blocks = append(blocks, block{
						start:   piece[0],
						end:     piece[1],
						page:    page,
						heading: heading,
						content: text[piece[0]:piece[1]],
					})
				}
				continue
			}

			if pendingLen > 0 && pendingLen+paraLen > cfg.ParentTarget {
				flush()
			}
			pending = append(pending, para)
			pendingLen += paraLen
		}
		flush()
	}

	return blocks
}

func assemble(blocks []block, cfg Config) []Span {
	spans := make([]Span, 0, len(blocks)*3)

	for _, b := range blocks {
		parentSlot := len(spans)
		spans = append(spans, Span{
			Content:        b.content,
			ChunkType:      TypeParent,
			ChunkIndex:     parentSlot,
			CharStart:      b.start,
			CharEnd:        b.end,
			PageNumber:     b.page,
			SectionHeading: b.heading,
			TimestampStart: b.tsStart,
			TimestampEnd:   b.tsEnd,
		})

		pi := parentSlot
		for _, piece := range childPieces(b.content, b.start, cfg.ChildMax) {
			spans = append(spans, Span{
				Content:        b.content[piece[0]-b.start : piece[1]-b.start],
				ChunkType:      TypeChild,
				ChunkIndex:     len(spans),
				ParentIndex:    &pi,
				CharStart:      piece[0],
				CharEnd:        piece[1],
				PageNumber:     b.page,
				SectionHeading: b.heading,
				TimestampStart: b.tsStart,
				TimestampEnd:   b.tsEnd,
			})
		}
	}

	return spans
}

// childPieces tiles a parent's content into equal-ish pieces no longer than
// max, nudging each cut onto a nearby sentence end when one exists. Returned
// offsets are absolute (base is the parent's CharStart).
func childPieces(content string, base, max int) [][2]int {
	length := len(content)
	if length <= 0 {
		return nil
	}
	n := (length + max - 1) / max
	size := (length + n - 1) / n

	const window = 40
	var pieces [][2]int
	for s := 0; s < length; {
		e := s + size
		if e >= length {
			e = length
		} else if cut := sentenceCut(content, e, window); cut > s {
			e = cut
		}
		pieces = append(pieces, [2]int{base + s, base + e})
		s = e
	}
	return pieces
}

// sentenceCut looks for a sentence-ending punctuation mark within window
// bytes around pos and returns the offset just past it, or -1.
func sentenceCut(s string, pos, window int) int {
	lo := pos - window
	if lo < 0 {
		lo = 0
	}
	hi := pos + window
	if hi > len(s) {
		hi = len(s)
	}
	best := -1
	for i := lo; i < hi-1; i++ {
		if (s[i] == '.' || s[i] == '!' || s[i] == '?') && isSpace(s[i+1]) {
			if best == -1 || abs(i+1-pos) < abs(best-pos) {
				best = i + 1
			}
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// wordSplit divides [start, end) of text into equal-ish contiguous pieces
// no longer than roughly max. Each interior cut is nudged onto the nearest
// whitespace within a small window so words stay intact; when the window
// holds no whitespace the exact boundary is used.
func wordSplit(text string, start, end, max int) [][2]int {
	length := end - start
	if length <= 0 {
		return nil
	}
	n := (length + max - 1) / max
	size := (length + n - 1) / n

	const window = 40
	pieces := make([][2]int, 0, n)
	for s := start; s < end; {
		e := s + size
		if e >= end {
			e = end
		} else if cut := spaceCut(text, e, window); cut > s && cut <= end {
			e = cut
		}
		pieces = append(pieces, [2]int{s, e})
		s = e
	}
	return pieces
}

// spaceCut returns the offset just past the whitespace byte nearest to pos
// within window bytes, or -1 when none exists.
func spaceCut(s string, pos, window int) int {
	lo := pos - window
	if lo < 0 {
		lo = 0
	}
	hi := pos + window
	if hi > len(s) {
		hi = len(s)
	}
	best := -1
	for i := lo; i < hi; i++ {
		if isSpace(s[i]) && (best == -1 || abs(i+1-pos) < abs(best-pos)) {
			best = i + 1
		}
	}
	return best
}

type region struct {
	start int
	end   int
}

// splitPages splits on form feed characters, which PDF extraction emits
// between pages.
func splitPages(text string) []region {
	var pages []region
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\f' {
			if i > start {
				pages = append(pages, region{start: start, end: i})
			}
			start = i + 1
		}
	}
	if start < len(text) {
		pages = append(pages, region{start: start, end: len(text)})
	}
	return pages
}

type paragraph struct {
	source string
	start  int
	end    int
}

func (p paragraph) text() string {
	return p.source[p.start:p.end]
}

// splitParagraphs splits a region on blank lines, trimming surrounding
// whitespace from each paragraph while keeping absolute offsets.
func splitParagraphs(text string, start, end int) []paragraph {
	var paras []paragraph
	segment := text[start:end]

	offset := 0
	for offset < len(segment) {
		next := strings.Index(segment[offset:], "\n\n")
		var pEnd int
		if next == -1 {
			pEnd = len(segment)
		} else {
			pEnd = offset + next
		}

		s, e := trimOffsets(segment, offset, pEnd)
		if e > s {
			paras = append(paras, paragraph{source: text, start: start + s, end: start + e})
		}

		if next == -1 {
			break
		}
		offset = pEnd + 2
	}

	return paras
}

func trimOffsets(s string, start, end int) (int, int) {
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// detectHeading recognizes markdown headings and short all-caps lines.
func detectHeading(para string) (string, bool) {
	line := para
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "#") {
		return strings.TrimSpace(strings.TrimLeft(line, "# ")), true
	}

	if len(line) == 0 || len(line) > 80 || line != para {
		return "", false
	}
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return "", false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	if !hasLetter || strings.HasSuffix(line, ".") {
		return "", false
	}
	return line, true
}
