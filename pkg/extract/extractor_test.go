package extract

import (
	"context"
	"errors"
	"testing"

	"case-knowledge-be/pkg/transcribe"
)

type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeTranscriber struct {
	transcript transcribe.Transcript
	err        error
	calls      int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, data []byte, mimeType string) (transcribe.Transcript, error) {
	f.calls++
	return f.transcript, f.err
}

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, &fakeTranscriber{})

	res, err := e.Extract(context.Background(), []byte("hello world"), "text/plain", "notes.txt")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Text != "hello world" {
		t.Errorf("Text = %q, want %q", res.Text, "hello world")
	}
}

func TestExtractStripsBOM(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, &fakeTranscriber{})

	blob := append([]byte{0xEF, 0xBB, 0xBF}, []byte("content")...)
	res, err := e.Extract(context.Background(), blob, "text/plain", "a.txt")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Text != "content" {
		t.Errorf("Text = %q, BOM not stripped", res.Text)
	}
}

func TestExtractTextByExtension(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, &fakeTranscriber{})

	res, err := e.Extract(context.Background(), []byte("# heading"), "application/octet-stream", "README.md")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Text != "# heading" {
		t.Errorf("markdown by extension not decoded, got %q", res.Text)
	}
}

func TestExtractImageUsesOCR(t *testing.T) {
	ocrProvider := &fakeOCR{text: "text on the image"}
	e := NewExtractor(ocrProvider, &fakeTranscriber{})

	res, err := e.Extract(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg", "scan.jpg")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Text != "text on the image" {
		t.Errorf("Text = %q", res.Text)
	}
	if ocrProvider.calls != 1 {
		t.Errorf("OCR calls = %d, want 1", ocrProvider.calls)
	}
}

func TestExtractImageOCRFailure(t *testing.T) {
	e := NewExtractor(&fakeOCR{err: errors.New("vision api down")}, &fakeTranscriber{})

	_, err := e.Extract(context.Background(), []byte{0xFF, 0xD8}, "image/png", "scan.png")
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("err = %v, want *ExtractionError", err)
	}
	if exErr.FileName != "scan.png" {
		t.Errorf("FileName = %q", exErr.FileName)
	}
}

func TestExtractAudioTranscribes(t *testing.T) {
	tr := &fakeTranscriber{transcript: transcribe.Transcript{
		Text: "spoken words",
		Segments: []transcribe.Segment{
			{Text: "spoken words", Start: 0, End: 3},
		},
	}}
	e := NewExtractor(&fakeOCR{}, tr)

	res, err := e.Extract(context.Background(), []byte{0x00}, "audio/mpeg", "memo.mp3")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Text != "spoken words" {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.Segments) != 1 || res.Segments[0].End != 3 {
		t.Errorf("Segments = %+v, timestamps lost", res.Segments)
	}
}

func TestExtractVideoTranscribes(t *testing.T) {
	tr := &fakeTranscriber{transcript: transcribe.Transcript{Text: "video speech"}}
	e := NewExtractor(&fakeOCR{}, tr)

	res, err := e.Extract(context.Background(), []byte{0x00}, "video/mp4", "clip.mp4")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Text != "video speech" || tr.calls != 1 {
		t.Errorf("video was not routed to transcription")
	}
}

func TestExtractMalformedPDFFallsBackToOCR(t *testing.T) {
	ocrProvider := &fakeOCR{text: "ocr rescued this"}
	e := NewExtractor(ocrProvider, &fakeTranscriber{})

	// Not a valid PDF: the native text layer fails, OCR takes over.
	res, err := e.Extract(context.Background(), []byte("not a pdf"), "application/pdf", "broken.pdf")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Text != "ocr rescued this" {
		t.Errorf("Text = %q, want OCR fallback result", res.Text)
	}
	if ocrProvider.calls != 1 {
		t.Errorf("OCR calls = %d, want 1", ocrProvider.calls)
	}
}

func TestExtractPDFBothPathsFail(t *testing.T) {
	e := NewExtractor(&fakeOCR{err: errors.New("ocr down")}, &fakeTranscriber{})

	_, err := e.Extract(context.Background(), []byte("not a pdf"), "application/pdf", "broken.pdf")
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("err = %v, want *ExtractionError", err)
	}
	if exErr.Kind != "pdf" {
		t.Errorf("Kind = %q, want pdf", exErr.Kind)
	}
}

func TestExtractUnknownPrintable(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, &fakeTranscriber{})

	res, err := e.Extract(context.Background(), []byte("key=value\nanother=thing\n"), "application/x-unknown", "config.dat")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if res.Text == "" {
		t.Errorf("printable unknown blob should decode")
	}
}

func TestExtractUnknownBinary(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, &fakeTranscriber{})

	blob := make([]byte, 64)
	for i := range blob {
		blob[i] = byte(i % 7) // control characters
	}
	res, err := e.Extract(context.Background(), blob, "application/octet-stream", "blob.bin")
	if err != nil {
		t.Fatalf("unknown binary must not error, got: %v", err)
	}
	if res.Text != "" {
		t.Errorf("Text = %q, want empty for binary blob", res.Text)
	}
}
