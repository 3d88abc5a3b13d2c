package chunker

import (
	"strings"
	"testing"
)

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func parentsOf(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.ChunkType == TypeParent {
			out = append(out, s)
		}
	}
	return out
}

func childrenOf(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.ChunkType == TypeChild {
			out = append(out, s)
		}
	}
	return out
}

func TestChunkEmptyInput(t *testing.T) {
	if got := Chunk("", DefaultConfig()); len(got) != 0 {
		t.Errorf("Chunk(\"\") = %d spans, want 0", len(got))
	}
	if got := Chunk("   \n\t  ", DefaultConfig()); len(got) != 0 {
		t.Errorf("Chunk(whitespace) = %d spans, want 0", len(got))
	}
}

func TestChunkUniformText(t *testing.T) {
	// 2,400 chars with no natural boundaries: exactly even hard splits.
	text := strings.Repeat("a", 2400)
	spans := Chunk(text, DefaultConfig())

	parents := parentsOf(spans)
	if len(parents) != 3 {
		t.Fatalf("parents = %d, want 3", len(parents))
	}
	for _, p := range parents {
		if got := len(p.Content); got != 800 {
			t.Errorf("parent length = %d, want 800", got)
		}
	}

	children := childrenOf(spans)
	if len(children) != 6 {
		t.Fatalf("children = %d, want 6 (2 per parent)", len(children))
	}

	// Output order is parent followed by its children, indexes sequential.
	for i, s := range spans {
		if s.ChunkIndex != i {
			t.Errorf("spans[%d].ChunkIndex = %d, want %d", i, s.ChunkIndex, i)
		}
	}
	wantTypes := []string{
		TypeParent, TypeChild, TypeChild,
		TypeParent, TypeChild, TypeChild,
		TypeParent, TypeChild, TypeChild,
	}
	for i, want := range wantTypes {
		if spans[i].ChunkType != want {
			t.Errorf("spans[%d].ChunkType = %s, want %s", i, spans[i].ChunkType, want)
		}
	}

	// Children reference their parent's slice position.
	wantParentIndex := map[int]int{1: 0, 2: 0, 4: 3, 5: 3, 7: 6, 8: 6}
	for i, want := range wantParentIndex {
		if spans[i].ParentIndex == nil || *spans[i].ParentIndex != want {
			t.Errorf("spans[%d].ParentIndex = %v, want %d", i, spans[i].ParentIndex, want)
		}
	}
}

func TestChunkNestingInvariant(t *testing.T) {
	text := "First sentence of the opening paragraph. It keeps going for a while to gain some length.\n\n" +
		strings.Repeat("Body text that repeats to fill the document with content. ", 60) +
		"\n\nA closing paragraph."
	spans := Chunk(text, DefaultConfig())

	for i, s := range spans {
		if s.Content != text[s.CharStart:s.CharEnd] {
			t.Fatalf("spans[%d] content does not match its char range", i)
		}
		if s.ChunkType != TypeChild {
			continue
		}
		if s.ParentIndex == nil {
			t.Fatalf("child spans[%d] has nil ParentIndex", i)
		}
		parent := spans[*s.ParentIndex]
		if parent.ChunkType != TypeParent {
			t.Fatalf("spans[%d].ParentIndex points at a %s", i, parent.ChunkType)
		}
		if s.CharStart < parent.CharStart || s.CharEnd > parent.CharEnd {
			t.Errorf("child [%d,%d) outside parent [%d,%d)",
				s.CharStart, s.CharEnd, parent.CharStart, parent.CharEnd)
		}
	}
}

func TestChunkReconstruction(t *testing.T) {
	text := "Intro paragraph with a couple of sentences. Another one here.\n\n" +
		strings.Repeat("Middle content sentence that fills up the parent budget nicely. ", 40) +
		"\n\nFinal remarks about the document."
	spans := Chunk(text, DefaultConfig())

	var contents []string
	for _, p := range parentsOf(spans) {
		contents = append(contents, p.Content)
	}
	if got, want := normalize(strings.Join(contents, " ")), normalize(text); got != want {
		t.Errorf("parent concatenation does not reconstruct input")
	}
}

func TestChunkOversizedParagraphSplitsOnWords(t *testing.T) {
	// A single paragraph far above ParentMax must be cut into several
	// parents without landing a boundary inside a word.
	text := strings.Repeat("Middle content sentence that fills up the parent budget nicely. ", 40)
	spans := Chunk(text, DefaultConfig())

	parents := parentsOf(spans)
	if len(parents) < 2 {
		t.Fatalf("parents = %d, want at least 2", len(parents))
	}
	for i, p := range parents {
		if p.CharEnd < len(text) && !isSpace(text[p.CharEnd-1]) && !isSpace(text[p.CharEnd]) {
			t.Errorf("parent %d ends mid-word at offset %d (%q|%q)",
				i, p.CharEnd, text[p.CharEnd-5:p.CharEnd], text[p.CharEnd:p.CharEnd+5])
		}
	}

	var contents []string
	for _, p := range parents {
		contents = append(contents, p.Content)
	}
	if normalize(strings.Join(contents, " ")) != normalize(text) {
		t.Errorf("parent concatenation does not reconstruct input")
	}
}

func TestChunkParentSizeBounds(t *testing.T) {
	text := strings.Repeat("Sentence that is repeated over and over again to build bulk. ", 100)
	cfg := DefaultConfig()
	spans := Chunk(text, cfg)

	for _, p := range parentsOf(spans) {
		if len(p.Content) > cfg.ParentMax {
			t.Errorf("parent length %d exceeds max %d", len(p.Content), cfg.ParentMax)
		}
	}
	for _, c := range childrenOf(spans) {
		if len(c.Content) > cfg.ChildMax+40 {
			t.Errorf("child length %d far exceeds target %d", len(c.Content), cfg.ChildMax)
		}
	}
}

func TestChunkPageNumbers(t *testing.T) {
	text := "Content on the first page of the document.\fContent on the second page.\fAnd the third."
	spans := Chunk(text, DefaultConfig())

	wantByContent := map[string]int{
		"Content on the first page of the document.": 1,
		"Content on the second page.":                2,
		"And the third.":                             3,
	}
	for _, p := range parentsOf(spans) {
		want, ok := wantByContent[p.Content]
		if !ok {
			t.Fatalf("unexpected parent content %q", p.Content)
		}
		if p.PageNumber == nil || *p.PageNumber != want {
			t.Errorf("page number for %q = %v, want %d", p.Content, p.PageNumber, want)
		}
	}

	// Single-page documents carry no page number.
	single := Chunk("Just one page of text here.", DefaultConfig())
	for _, s := range single {
		if s.PageNumber != nil {
			t.Errorf("single-page span has PageNumber %d", *s.PageNumber)
		}
	}
}

func TestChunkSectionHeadings(t *testing.T) {
	text := "# Findings\n\nThe findings paragraph describes what was discovered during review.\n\n" +
		"# Recommendations\n\nThe recommendations paragraph lists the proposed next steps."
	spans := Chunk(text, DefaultConfig())

	sawFindings, sawRecommendations := false, false
	for _, s := range spans {
		if s.SectionHeading == nil {
			continue
		}
		switch *s.SectionHeading {
		case "Findings":
			sawFindings = true
			if !strings.Contains(s.Content, "findings paragraph") && !strings.Contains(s.Content, "# Findings") {
				t.Errorf("Findings heading attached to unrelated span %q", s.Content)
			}
		case "Recommendations":
			sawRecommendations = true
		}
	}
	if !sawFindings || !sawRecommendations {
		t.Errorf("headings not detected: findings=%v recommendations=%v", sawFindings, sawRecommendations)
	}
}

func TestChunkAllCapsHeading(t *testing.T) {
	heading, ok := detectHeading("EXECUTIVE SUMMARY")
	if !ok || heading != "EXECUTIVE SUMMARY" {
		t.Errorf("detectHeading(all caps) = %q, %v", heading, ok)
	}

	if _, ok := detectHeading("This is an ordinary sentence."); ok {
		t.Error("ordinary sentence detected as heading")
	}
	if _, ok := detectHeading("12345 67890"); ok {
		t.Error("digits-only line detected as heading")
	}
}

func TestChunkTranscriptTimestamps(t *testing.T) {
	segments := []Segment{
		{Text: "Welcome to the recording.", Start: 0, End: 12.5},
		{Text: "We discuss the case background.", Start: 12.5, End: 47},
		{Text: "Closing remarks and next steps.", Start: 47, End: 61},
	}
	spans := ChunkTranscript(segments, DefaultConfig())
	if len(spans) == 0 {
		t.Fatal("no spans produced")
	}

	parent := spans[0]
	if parent.ChunkType != TypeParent {
		t.Fatalf("first span is %s, want parent", parent.ChunkType)
	}
	if parent.TimestampStart == nil || *parent.TimestampStart != 0 {
		t.Errorf("TimestampStart = %v, want 0", parent.TimestampStart)
	}
	if parent.TimestampEnd == nil || *parent.TimestampEnd != 61 {
		t.Errorf("TimestampEnd = %v, want 61", parent.TimestampEnd)
	}

	// Offsets refer to the canonical joined transcript.
	joined := JoinSegments(segments)
	for i, s := range spans {
		if s.Content != joined[s.CharStart:s.CharEnd] {
			t.Errorf("spans[%d] content does not match joined transcript range", i)
		}
	}
}

func TestChunkTranscriptOversizedSegment(t *testing.T) {
	// One segment well above ParentMax splits into several parents that all
	// keep the segment's timestamp range.
	segments := []Segment{
		{Text: strings.Repeat("Spoken words keep pouring out without any pause here. ", 50), Start: 3.5, End: 240},
	}
	cfg := DefaultConfig()
	spans := ChunkTranscript(segments, cfg)

	parents := parentsOf(spans)
	if len(parents) < 2 {
		t.Fatalf("parents = %d, want at least 2", len(parents))
	}
	for i, p := range parents {
		if len(p.Content) > cfg.ParentMax {
			t.Errorf("parent %d length %d exceeds max %d", i, len(p.Content), cfg.ParentMax)
		}
		if p.TimestampStart == nil || *p.TimestampStart != 3.5 {
			t.Errorf("parent %d TimestampStart = %v, want 3.5", i, p.TimestampStart)
		}
		if p.TimestampEnd == nil || *p.TimestampEnd != 240 {
			t.Errorf("parent %d TimestampEnd = %v, want 240", i, p.TimestampEnd)
		}
	}
}

func TestChunkTranscriptEmpty(t *testing.T) {
	if got := ChunkTranscript(nil, DefaultConfig()); len(got) != 0 {
		t.Errorf("ChunkTranscript(nil) = %d spans, want 0", len(got))
	}
	if got := ChunkTranscript([]Segment{{Text: "   "}}, DefaultConfig()); len(got) != 0 {
		t.Errorf("ChunkTranscript(blank) = %d spans, want 0", len(got))
	}
}
