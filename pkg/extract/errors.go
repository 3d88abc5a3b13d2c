package extract

import "fmt"

// ExtractionError is returned only when every strategy in a fallback chain
// has failed. Primary-strategy failures fall through silently.
type ExtractionError struct {
	FileName string
	Kind     string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s (%s): %v", e.FileName, e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
