package extract

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"case-knowledge-be/pkg/ocr"
	"case-knowledge-be/pkg/transcribe"
)

// Result is the outcome of extraction. Text is the full extracted content
// (possibly empty). Segments is set only for transcribed audio and video,
// where Text equals the segment texts joined by blank lines.
type Result struct {
	Text     string
	Segments []transcribe.Segment
}

// Extractor converts a raw blob plus its declared content type into plain
// text, choosing a per-modality strategy with fallbacks. An error means
// every fallback was exhausted.
type Extractor struct {
	ocrProvider        ocr.Provider
	transcribeProvider transcribe.Provider
}

func NewExtractor(ocrProvider ocr.Provider, transcribeProvider transcribe.Provider) *Extractor {
	return &Extractor{
		ocrProvider:        ocrProvider,
		transcribeProvider: transcribeProvider,
	}
}

func (e *Extractor) Extract(ctx context.Context, blob []byte, contentType, fileName string) (Result, error) {
	switch {
	case isTextType(contentType, fileName):
		return Result{Text: decodeText(blob)}, nil

	case isPDF(contentType, fileName):
		return e.extractPDF(ctx, blob, fileName)

	case strings.HasPrefix(contentType, "image/"):
		text, err := e.ocrProvider.ExtractText(ctx, blob, contentType)
		if err != nil {
			return Result{}, &ExtractionError{FileName: fileName, Kind: "image ocr", Err: err}
		}
		return Result{Text: text}, nil

	case strings.HasPrefix(contentType, "audio/"), strings.HasPrefix(contentType, "video/"):
		transcript, err := e.transcribeProvider.Transcribe(ctx, blob, contentType)
		if err != nil {
			return Result{}, &ExtractionError{FileName: fileName, Kind: "transcription", Err: err}
		}
		return Result{Text: transcript.Text, Segments: transcript.Segments}, nil

	default:
		// Unknown type: best-effort decode, never an error.
		if looksLikeText(blob) {
			return Result{Text: decodeText(blob)}, nil
		}
		return Result{}, nil
	}
}

// extractPDF tries the native text layer first; encrypted, scanned or
// malformed PDFs fall back to OCR over the raw bytes.
func (e *Extractor) extractPDF(ctx context.Context, blob []byte, fileName string) (Result, error) {
	text, err := pdfTextLayer(blob)
	if err == nil && strings.TrimSpace(text) != "" {
		return Result{Text: text}, nil
	}

	ocrText, ocrErr := e.ocrProvider.ExtractText(ctx, blob, "application/pdf")
	if ocrErr != nil {
		if err == nil {
			err = ocrErr
		}
		return Result{}, &ExtractionError{FileName: fileName, Kind: "pdf", Err: err}
	}
	return Result{Text: ocrText}, nil
}

func isTextType(contentType, fileName string) bool {
	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	switch contentType {
	case "application/json", "application/xml", "application/csv", "application/rtf":
		return true
	}
	lower := strings.ToLower(fileName)
	for _, ext := range []string{".txt", ".md", ".csv", ".json", ".xml", ".log"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func isPDF(contentType, fileName string) bool {
	return contentType == "application/pdf" || strings.HasSuffix(strings.ToLower(fileName), ".pdf")
}

// decodeText decodes a blob as UTF-8, stripping a BOM and dropping invalid
// sequences rather than failing.
func decodeText(blob []byte) string {
	blob = bytes.TrimPrefix(blob, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(blob) {
		return string(blob)
	}
	return strings.ToValidUTF8(string(blob), "")
}

// looksLikeText samples the blob and accepts it when it is mostly printable.
func looksLikeText(blob []byte) bool {
	if len(blob) == 0 {
		return false
	}
	sample := blob
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	if !utf8.Valid(sample) {
		return false
	}
	control := 0
	for _, b := range sample {
		if b < 0x09 || (b > 0x0D && b < 0x20) {
			control++
		}
	}
	return control*20 < len(sample)
}
