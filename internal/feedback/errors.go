package feedback

import "errors"

var (
	ErrFileNotFound  = errors.New("could not find interview feedback file")
	ErrAmbiguousFile = errors.New("multiple interview feedback files for job")
	ErrFileLookup    = errors.New("interview feedback file lookup failed")
	ErrDownload      = errors.New("failed to download feedback file")
	ErrMalformedCSV  = errors.New("malformed feedback csv")
	ErrNoValidRows   = errors.New("no valid feedback rows found in the csv")
	ErrPersist       = errors.New("failed to save processed results")
	ErrInvalidAction = errors.New("invalid action")
)
