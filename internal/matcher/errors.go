package matcher

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyJobDescription = errors.New("job description is required")
	ErrNoResumes           = errors.New("no resumes uploaded")
	ErrInvalidTopN         = errors.New("n must be a positive integer")
)

// ExtractionError reports a resume whose text could not be extracted.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("Failed to extract text from %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmptyTextError reports a resume that yielded no text.
type EmptyTextError struct {
	Filename string
}

func (e *EmptyTextError) Error() string {
	return "No text extracted from " + e.Filename
}

// EmbeddingError reports a failed embedding call.
type EmbeddingError struct {
	Subject string
	Err     error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embed %s: %v", e.Subject, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }
