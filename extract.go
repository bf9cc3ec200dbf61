// Package chihlee implements the PDF-to-CSV academic-calendar extraction
// pipeline: PDF bytes in, a normalized date/event CSV out.
package chihlee

import (
	"fmt"
	"os"
	"strings"

	"github.com/ctlin/chihlee-calendar/calendarclean"
	"github.com/ctlin/chihlee-calendar/csvwriter"
	"github.com/ctlin/chihlee-calendar/headerinfer"
	"github.com/ctlin/chihlee-calendar/model"
	"github.com/ctlin/chihlee-calendar/pdfreader"
	"github.com/ctlin/chihlee-calendar/tabledetect"
	"github.com/ctlin/chihlee-calendar/tablemerge"
)

// ExtractionReport summarizes one extraction (spec.md §6).
type ExtractionReport struct {
	RowCount   int
	TableCount int
	Warnings   []model.ExtractWarning
}

// ExtractPDFToCSV reads inputPath, runs the pipeline, and writes the result
// CSV to outputPath.
func ExtractPDFToCSV(inputPath, outputPath string, opts ...Option) (ExtractionReport, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return ExtractionReport{}, model.WrapErr(model.KindIO, err)
	}

	csvText, report, err := ExtractPDFBytesToCSVString(data, opts...)
	if err != nil {
		return ExtractionReport{}, err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return ExtractionReport{}, model.WrapErr(model.KindIO, err)
	}
	defer f.Close()

	if _, err := f.WriteString(csvText); err != nil {
		return ExtractionReport{}, model.WrapErr(model.KindIO, err)
	}

	return report, nil
}

// ExtractPDFBytesToCSVString runs the full pipeline (spec.md §4.9) over
// in-memory PDF bytes and returns the rendered CSV plus a report.
func ExtractPDFBytesToCSVString(data []byte, opt ...Option) (string, ExtractionReport, error) {
	opts := DefaultOptions()
	for _, o := range opt {
		o(&opts)
	}
	if err := opts.validate(); err != nil {
		return "", ExtractionReport{}, err
	}

	var pageSelection []uint32
	if opts.Pages != "" {
		sel, err := parsePageSelection(opts.Pages)
		if err != nil {
			return "", ExtractionReport{}, err
		}
		pageSelection = sel
	}

	areas, err := parseAreas(opts.Areas)
	if err != nil {
		return "", ExtractionReport{}, err
	}

	pages, err := pdfreader.ReadPages(data, pageSelection)
	if err != nil {
		return "", ExtractionReport{}, err
	}
	if len(pages) == 0 {
		return "", ExtractionReport{}, model.ErrNoPagesSelected
	}

	merged, warnings, err := runPipeline(pages, areas, opts)
	if err != nil {
		return "", ExtractionReport{}, err
	}

	csvText, err := csvwriter.Write(merged, opts.delimiterOrDefault())
	if err != nil {
		return "", ExtractionReport{}, model.WrapErr(model.KindCSV, err)
	}

	report := ExtractionReport{
		RowCount:   merged.RowCount,
		TableCount: merged.TableCount,
		Warnings:   warnings,
	}
	return csvText, report, nil
}

// runPipeline implements spec.md §4.9 steps 3-9 over already-decoded pages,
// split out from ExtractPDFBytesToCSVString so the driver logic can be
// exercised directly against hand-built PageText fixtures.
func runPipeline(pages []model.PageText, areas []model.TableArea, opts Options) (model.MergedOutput, []model.ExtractWarning, error) {
	var warnings []model.ExtractWarning
	fullText := joinPages(pages)

	tables := tabledetect.DetectAll(pages, opts.MinCols)
	if len(tables) == 0 && strings.TrimSpace(fullText) != "" {
		synthetic := model.PageText{PageNumber: pages[0].PageNumber, Text: fullText}
		if recovered := tabledetect.Detect(synthetic, opts.MinCols); len(recovered) > 0 {
			tables = recovered
			warnings = append(warnings, model.NewWarning(model.WarningAreaFallbackApproximate,
				"no tables detected from per-page text; recovered from whole-document text"))
		}
	}

	if len(areas) > 0 {
		recovered, areaWarnings := tabledetect.ApplyAreas(pages, tables, areas, opts.MinCols)
		tables = recovered
		warnings = append(warnings, areaWarnings...)
	}

	tables, qualityWarnings, err := applyQualityMode(tables, opts.qualityModeOrDefault())
	if err != nil {
		return model.MergedOutput{}, nil, err
	}
	warnings = append(warnings, qualityWarnings...)

	effectiveHeaderMode := opts.headerModeOrDefault()
	dropFirst := make([]bool, len(tables))
	for i, t := range tables {
		res := headerinfer.Infer(t.Rows, effectiveHeaderMode, opts.CleanCalendar)
		dropFirst[i] = res.DropFirstRow
		if res.LowConfidence {
			warnings = append(warnings, model.ExtractWarning{
				Kind:       model.WarningHeaderInferenceLowConfidence,
				Page:       t.Page,
				Confidence: res.Confidence,
			})
		}
	}

	if len(tables) == 0 {
		warnings = append(warnings, model.NewWarning(model.WarningNoTablesDetected, "no tables detected"))
	}

	prepared := tablemerge.PrepareTables(tables, dropFirst)
	merged := tablemerge.Merge(prepared)

	if opts.CleanCalendar {
		merged = calendarclean.Clean(fullText, merged)
	}

	merged = applyProjectionAndRenaming(merged, opts)
	return merged, warnings, nil
}

func joinPages(pages []model.PageText) string {
	var sb strings.Builder
	for i, p := range pages {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// applyQualityMode implements spec.md §4.4.
func applyQualityMode(tables []model.DetectedTable, mode model.QualityMode) ([]model.DetectedTable, []model.ExtractWarning, error) {
	var warnings []model.ExtractWarning
	switch mode {
	case model.QualityStrict:
		for _, t := range tables {
			if t.LowConfidence() {
				return nil, nil, model.NewAmbiguousTableError(t.Page, t.Confidence)
			}
		}
		return tables, nil, nil
	case model.QualitySkipAmbiguous:
		var kept []model.DetectedTable
		for _, t := range tables {
			if t.LowConfidence() {
				warnings = append(warnings, model.ExtractWarning{
					Kind:       model.WarningLowConfidence,
					Page:       t.Page,
					Confidence: t.Confidence,
				})
				continue
			}
			kept = append(kept, t)
		}
		return kept, warnings, nil
	default: // BestEffort
		for _, t := range tables {
			if t.LowConfidence() {
				warnings = append(warnings, model.ExtractWarning{
					Kind:       model.WarningLowConfidence,
					Page:       t.Page,
					Confidence: t.Confidence,
				})
			}
		}
		return tables, warnings, nil
	}
}

func applyProjectionAndRenaming(merged model.MergedOutput, opts Options) model.MergedOutput {
	merged = csvwriter.Project(merged, opts.NoPage, opts.NoTable)
	if opts.CustomColNames[0] != "" || opts.CustomColNames[1] != "" {
		merged = csvwriter.Rename(merged, opts.CustomColNames[0], opts.CustomColNames[1])
	}
	return merged
}

// FormatWarning renders an ExtractWarning as a single human-readable line,
// used by the CLI's verbose mode.
func FormatWarning(w model.ExtractWarning) string {
	var sb strings.Builder
	sb.WriteString(string(w.Kind))
	if w.Page != 0 {
		fmt.Fprintf(&sb, " page=%d", w.Page)
	}
	if w.TableID != 0 {
		fmt.Fprintf(&sb, " table_id=%d", w.TableID)
	}
	if w.Confidence >= 0 {
		fmt.Fprintf(&sb, " confidence=%.2f", w.Confidence)
	}
	if w.Message != "" {
		fmt.Fprintf(&sb, " %s", w.Message)
	}
	return sb.String()
}
