package ocr

import "context"

// Provider extracts legible text from an image or a scanned document.
// Implementations return an empty string, not an error, when the input
// simply contains no readable text.
type Provider interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}
