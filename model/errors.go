package model

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by option parsing and the PDF reader. Detection
// ambiguities below Strict quality mode never produce these; they become
// warnings instead (see ExtractWarning).
var (
	// ErrNoPagesSelected is returned when a page selection removes every
	// page of the document.
	ErrNoPagesSelected = errors.New("chihlee: page selection matches no pages")

	// ErrPDFLoad is returned when the PDF bytes cannot be opened at all.
	ErrPDFLoad = errors.New("chihlee: failed to load PDF")

	// ErrInvalidPageSelection is returned for a malformed --pages spec.
	ErrInvalidPageSelection = errors.New("chihlee: invalid page selection")

	// ErrInvalidTableArea is returned for a malformed --area spec.
	ErrInvalidTableArea = errors.New("chihlee: invalid table area")

	// ErrInvalidOption is returned for any other invalid Options value
	// (e.g. min_cols < 2, a non-ASCII delimiter, an empty custom column name).
	ErrInvalidOption = errors.New("chihlee: invalid option")
)

// ErrorKind classifies the abstract error kinds from spec.md §7, letting
// out-of-core collaborators (the edge HTTP service) map a failure to a
// problem category without string-matching error text.
type ErrorKind string

const (
	KindIO                   ErrorKind = "io"
	KindCSV                  ErrorKind = "csv"
	KindPDFLoad              ErrorKind = "pdf_load"
	KindPDFExtract           ErrorKind = "pdf_extract"
	KindInvalidPageSelection ErrorKind = "invalid_page_selection"
	KindInvalidTableArea     ErrorKind = "invalid_table_area"
	KindInvalidOption        ErrorKind = "invalid_option"
	KindNoPagesSelected      ErrorKind = "no_pages_selected"
	KindAmbiguousTable       ErrorKind = "ambiguous_table"
)

// PipelineError is the structured error value returned by the driver. Page
// and Confidence are populated only for KindAmbiguousTable.
type PipelineError struct {
	Kind       ErrorKind
	Page       uint32
	Confidence float64
	Err        error
}

func (e *PipelineError) Error() string {
	switch e.Kind {
	case KindAmbiguousTable:
		return fmt.Sprintf("chihlee: ambiguous table on page %d (confidence %.2f)", e.Page, e.Confidence)
	case "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("chihlee: %s: %v", e.Kind, e.Err)
	}
}

func (e *PipelineError) Unwrap() error { return e.Err }

// Is matches the sentinel error for e's Kind, so errors.Is(err,
// ErrInvalidOption) holds for any KindInvalidOption failure.
func (e *PipelineError) Is(target error) bool {
	switch e.Kind {
	case KindNoPagesSelected:
		return target == ErrNoPagesSelected
	case KindPDFLoad:
		return target == ErrPDFLoad
	case KindInvalidPageSelection:
		return target == ErrInvalidPageSelection
	case KindInvalidTableArea:
		return target == ErrInvalidTableArea
	case KindInvalidOption:
		return target == ErrInvalidOption
	}
	return false
}

// NewAmbiguousTableError builds the Strict-mode failure for a low-confidence
// table (spec.md §4.4, §7).
func NewAmbiguousTableError(page uint32, confidence float64) *PipelineError {
	return &PipelineError{Kind: KindAmbiguousTable, Page: page, Confidence: confidence}
}

func WrapErr(kind ErrorKind, err error) *PipelineError {
	return &PipelineError{Kind: kind, Err: err}
}
