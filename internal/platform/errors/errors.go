package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrNotAFile          = errors.New("not a file")
	ErrNotAFolder        = errors.New("not a folder")
	ErrIO                = errors.New("io error")
	ErrEmptyChecklist    = errors.New("checklist is empty")
	ErrNoEligibleEntries = errors.New("no unchecked prompts found")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrRunInProgress     = errors.New("a draw is already in progress")
)
