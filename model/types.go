// Package model holds the data types shared by every pipeline stage
// (spec.md §3), so pdfreader, linetok, tabledetect, headerinfer,
// tablemerge, calendarclean, and csvwriter can all produce and consume
// them without importing the top-level chihlee package (which imports
// all of them to drive the pipeline).
package model

// PageText is the decoded text of a single page, produced once by the PDF
// reader and immutable afterwards.
type PageText struct {
	PageNumber uint32
	Text       string
}

// TableOrigin records whether a DetectedTable came from the ordinary
// whitespace-layout scan or from a manual-area recovery rescan (spec.md
// §4.3).
type TableOrigin string

const (
	OriginAuto       TableOrigin = "auto"
	OriginManualArea TableOrigin = "manual_area"
)

// DetectedTable is a candidate table found on one page, before header
// handling. Rows may be ragged.
type DetectedTable struct {
	Page       uint32
	Rows       [][]string
	Confidence float64
	Origin     TableOrigin
}

// LowConfidence reports whether the table falls below the 0.60 threshold
// (spec.md §3, Glossary).
func (t DetectedTable) LowConfidence() bool { return t.Confidence < 0.60 }

// PreparedTable is a DetectedTable after header handling, carrying the
// table_id assigned in detection order.
type PreparedTable struct {
	Page    uint32
	TableID int
	Rows    [][]string
}

// MergedOutput is the final table shape: every row has exactly len(Headers)
// fields.
type MergedOutput struct {
	Headers    []string
	Rows       [][]string
	TableCount int
	RowCount   int
}

// WarningKind enumerates the ExtractWarning tags from spec.md §3.
type WarningKind string

const (
	WarningLowConfidence                WarningKind = "low_confidence"
	WarningHeaderInferenceLowConfidence  WarningKind = "header_inference_low_confidence"
	WarningAreaFallbackApproximate       WarningKind = "area_fallback_approximate"
	WarningNoTablesDetected              WarningKind = "no_tables_detected"
)

// ExtractWarning is a non-fatal finding accumulated during extraction. Page
// and TableID are zero, and Confidence is -1, when not applicable.
type ExtractWarning struct {
	Kind       WarningKind
	Page       uint32
	TableID    int
	Confidence float64
	Message    string
}

// NewWarning builds an ExtractWarning with the "not applicable" sentinels
// for fields the caller doesn't set.
func NewWarning(kind WarningKind, message string) ExtractWarning {
	return ExtractWarning{Kind: kind, Confidence: -1, Message: message}
}

// HeaderMode selects how the Header Inferrer treats a table's first row
// (spec.md §4.5).
type HeaderMode string

const (
	HeaderAutoDetect HeaderMode = "auto_detect"
	HeaderHasHeader  HeaderMode = "has_header"
	HeaderNoHeader   HeaderMode = "no_header"
)

// QualityMode selects how low-confidence tables are treated (spec.md §4.4).
type QualityMode string

const (
	QualityBestEffort    QualityMode = "best_effort"
	QualityStrict        QualityMode = "strict"
	QualitySkipAmbiguous QualityMode = "skip_ambiguous"
)

// TableArea is a manual recovery hint for the Table Detector (spec.md §4.3,
// §6's `areas` option).
type TableArea struct {
	Page           uint32
	X1, Y1, X2, Y2 float64
}
