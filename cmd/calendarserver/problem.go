package main

import (
	"errors"
	"net/http"

	"github.com/ctlin/chihlee-calendar/model"
)

// ProblemCategory classifies a request failure for the edge service's JSON
// error body (spec.md §7's edge-collaborator mapping).
type ProblemCategory string

const (
	ProblemParse    ProblemCategory = "parse"
	ProblemUpstream ProblemCategory = "upstream"
	ProblemNotFound ProblemCategory = "not_found"
	ProblemInternal ProblemCategory = "internal"
)

// problem is the JSON body returned for any non-2xx response.
type problem struct {
	Category ProblemCategory `json:"category"`
	Message  string          `json:"message"`
}

// errNotFound is returned by handlers when a requested semester has no
// known catalog entry.
var errNotFound = errors.New("calendarserver: no catalog entry for that semester")

// errUpstream is returned when fetching the catalog or a PDF from the
// university site fails.
var errUpstream = errors.New("calendarserver: upstream fetch failed")

// categorize maps an error to a ProblemCategory and HTTP status, unwrapping
// the core pipeline's *model.PipelineError where present so a PDF parsing
// failure reports as "parse" rather than a generic 500.
func categorize(err error) (ProblemCategory, int) {
	switch {
	case errors.Is(err, errNotFound):
		return ProblemNotFound, http.StatusNotFound
	case errors.Is(err, errUpstream):
		return ProblemUpstream, http.StatusBadGateway
	}

	var pe *model.PipelineError
	if errors.As(err, &pe) {
		switch pe.Kind {
		case model.KindPDFLoad, model.KindPDFExtract, model.KindAmbiguousTable,
			model.KindInvalidPageSelection, model.KindInvalidTableArea, model.KindInvalidOption:
			return ProblemParse, http.StatusUnprocessableEntity
		case model.KindNoPagesSelected:
			return ProblemNotFound, http.StatusNotFound
		}
	}

	return ProblemInternal, http.StatusInternalServerError
}
