package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfTextLayer reads the native text layer of a PDF, page by page, with a
// form feed between pages so downstream chunking can recover page numbers.
// Returns an empty string with nil error when the PDF parses but has no
// extractable text (scanned pages), letting the caller decide on an OCR
// fallback. The parser panics on some malformed inputs, so this recovers
// and reports those as errors.
func pdfTextLayer(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	if len(data) == 0 {
		return "", nil
	}
	readerAt := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// One unreadable page does not void the rest of the document.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\f"), nil
}
