package chihlee

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ctlin/chihlee-calendar/model"
)

// Re-exported so callers don't need to import model for the handful of enum
// values and the error kind they pass to Options.
type (
	HeaderMode  = model.HeaderMode
	QualityMode = model.QualityMode
	TableArea   = model.TableArea
	ErrorKind   = model.ErrorKind
)

const (
	HeaderAutoDetect = model.HeaderAutoDetect
	HeaderHasHeader  = model.HeaderHasHeader
	HeaderNoHeader   = model.HeaderNoHeader

	QualityBestEffort    = model.QualityBestEffort
	QualityStrict        = model.QualityStrict
	QualitySkipAmbiguous = model.QualitySkipAmbiguous
)

var (
	ErrNoPagesSelected      = model.ErrNoPagesSelected
	ErrPDFLoad              = model.ErrPDFLoad
	ErrInvalidPageSelection = model.ErrInvalidPageSelection
	ErrInvalidTableArea     = model.ErrInvalidTableArea
	ErrInvalidOption        = model.ErrInvalidOption
)

// Options configures one extraction (spec.md §6). The zero value is not
// valid on its own — use DefaultOptions, which sets MinCols and
// QualityMode to their spec defaults.
type Options struct {
	// Pages is a 1-based selection spec, e.g. "1-3,5". Empty means "all
	// pages"; this is the library default, and the CLI behaves the same
	// when --pages is omitted.
	Pages string

	// Areas are manual recovery hints, each "page:x1,y1,x2,y2".
	Areas []string

	// Delimiter is a single ASCII byte; zero value defaults to ','.
	Delimiter byte

	HeaderMode  HeaderMode
	QualityMode QualityMode
	MinCols     int

	CleanCalendar bool

	NoPage  bool
	NoTable bool

	// CustomColNames, if both non-empty, renames col_1/col_2.
	CustomColNames [2]string
}

// DefaultOptions returns the spec.md defaults: BestEffort quality,
// AutoDetect headers, min_cols = 2, comma delimiter.
func DefaultOptions() Options {
	return Options{
		Delimiter:   ',',
		HeaderMode:  HeaderAutoDetect,
		QualityMode: QualityBestEffort,
		MinCols:     2,
	}
}

// Option mutates an Options value. Mirrors the functional-option style used
// for library calls elsewhere in this codebase (config knobs that matter to
// one call site don't need to widen the Options struct's zero value).
type Option func(*Options)

func WithPages(spec string) Option      { return func(o *Options) { o.Pages = spec } }
func WithAreas(specs ...string) Option  { return func(o *Options) { o.Areas = append(o.Areas, specs...) } }
func WithDelimiter(b byte) Option       { return func(o *Options) { o.Delimiter = b } }
func WithHeaderMode(m HeaderMode) Option { return func(o *Options) { o.HeaderMode = m } }
func WithQualityMode(m QualityMode) Option {
	return func(o *Options) { o.QualityMode = m }
}
func WithMinCols(n int) Option  { return func(o *Options) { o.MinCols = n } }
func WithCleanCalendar() Option { return func(o *Options) { o.CleanCalendar = true } }
func WithNoPage() Option        { return func(o *Options) { o.NoPage = true } }
func WithNoTable() Option       { return func(o *Options) { o.NoTable = true } }
func WithCustomColNames(a, b string) Option {
	return func(o *Options) { o.CustomColNames = [2]string{a, b} }
}

// validate checks the invariants spec.md §4.9 step 1 and §6 require before
// any page gets read.
func (o Options) validate() error {
	if o.MinCols < 2 {
		return model.WrapErr(model.KindInvalidOption, fmt.Errorf("min_cols must be >= 2, got %d", o.MinCols))
	}
	if o.Delimiter > 127 {
		return model.WrapErr(model.KindInvalidOption, fmt.Errorf("delimiter must be a single ASCII byte"))
	}
	if (o.CustomColNames[0] == "") != (o.CustomColNames[1] == "") {
		return model.WrapErr(model.KindInvalidOption, fmt.Errorf("custom_col_names requires both names non-empty"))
	}
	switch o.HeaderMode {
	case "", HeaderAutoDetect, HeaderHasHeader, HeaderNoHeader:
	default:
		return model.WrapErr(model.KindInvalidOption, fmt.Errorf("unknown header_mode %q", o.HeaderMode))
	}
	switch o.QualityMode {
	case "", QualityBestEffort, QualityStrict, QualitySkipAmbiguous:
	default:
		return model.WrapErr(model.KindInvalidOption, fmt.Errorf("unknown quality_mode %q", o.QualityMode))
	}
	return nil
}

func (o Options) delimiterOrDefault() byte {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

func (o Options) headerModeOrDefault() HeaderMode {
	if o.HeaderMode == "" {
		return HeaderAutoDetect
	}
	return o.HeaderMode
}

func (o Options) qualityModeOrDefault() QualityMode {
	if o.QualityMode == "" {
		return QualityBestEffort
	}
	return o.QualityMode
}

// parsePageSelection parses a 1-based spec like "1-3,5" into a sorted,
// deduplicated slice of page numbers. An empty spec is an error (spec.md
// §6); page 0 is an error.
func parsePageSelection(spec string) ([]uint32, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, model.WrapErr(model.KindInvalidPageSelection, fmt.Errorf("page selection must not be empty"))
	}

	seen := make(map[uint32]bool)
	var pages []uint32
	add := func(p uint32) error {
		if p == 0 {
			return model.WrapErr(model.KindInvalidPageSelection, fmt.Errorf("page 0 is invalid"))
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
		return nil
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if dash := strings.IndexByte(part, '-'); dash >= 0 {
			loStr, hiStr := strings.TrimSpace(part[:dash]), strings.TrimSpace(part[dash+1:])
			lo, err := strconv.ParseUint(loStr, 10, 32)
			if err != nil {
				return nil, model.WrapErr(model.KindInvalidPageSelection, fmt.Errorf("invalid range %q: %w", part, err))
			}
			hi, err := strconv.ParseUint(hiStr, 10, 32)
			if err != nil {
				return nil, model.WrapErr(model.KindInvalidPageSelection, fmt.Errorf("invalid range %q: %w", part, err))
			}
			if hi < lo {
				return nil, model.WrapErr(model.KindInvalidPageSelection, fmt.Errorf("invalid range %q: end before start", part))
			}
			for p := lo; p <= hi; p++ {
				if err := add(uint32(p)); err != nil {
					return nil, err
				}
			}
		} else {
			p, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return nil, model.WrapErr(model.KindInvalidPageSelection, fmt.Errorf("invalid page %q: %w", part, err))
			}
			if err := add(uint32(p)); err != nil {
				return nil, err
			}
		}
	}

	if len(pages) == 0 {
		return nil, model.WrapErr(model.KindInvalidPageSelection, fmt.Errorf("page selection matched nothing"))
	}
	slices.Sort(pages)
	return pages, nil
}

// parseAreas parses "page:x1,y1,x2,y2" specs into TableAreas (spec.md §6).
func parseAreas(specs []string) ([]TableArea, error) {
	var areas []TableArea
	for _, spec := range specs {
		colon := strings.IndexByte(spec, ':')
		if colon < 0 {
			return nil, model.WrapErr(model.KindInvalidTableArea, fmt.Errorf("area %q missing page prefix", spec))
		}
		pageStr := strings.TrimSpace(spec[:colon])
		page, err := strconv.ParseUint(pageStr, 10, 32)
		if err != nil || page < 1 {
			return nil, model.WrapErr(model.KindInvalidTableArea, fmt.Errorf("area %q: invalid page", spec))
		}

		coords := strings.Split(spec[colon+1:], ",")
		if len(coords) != 4 {
			return nil, model.WrapErr(model.KindInvalidTableArea, fmt.Errorf("area %q: expected 4 coordinates", spec))
		}
		vals := make([]float64, 4)
		for i, c := range coords {
			v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
			if err != nil {
				return nil, model.WrapErr(model.KindInvalidTableArea, fmt.Errorf("area %q: invalid coordinate %q", spec, c))
			}
			vals[i] = v
		}
		if !(vals[2] > vals[0] && vals[3] > vals[1]) {
			return nil, model.WrapErr(model.KindInvalidTableArea, fmt.Errorf("area %q: x2>x1 and y2>y1 required", spec))
		}
		areas = append(areas, TableArea{Page: uint32(page), X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]})
	}
	return areas, nil
}
