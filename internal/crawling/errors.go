// Package crawling harvests raw interview questions from a fixed list of public pages.
package crawling

import "fmt"

// ExtractionError represents a failure to parse a fetched page
type ExtractionError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.URL, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
