// Command extract is the thin CLI collaborator around the core pipeline
// (spec.md §6): it parses flags into library Options, runs the extraction,
// and maps the result onto process exit codes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	chihlee "github.com/ctlin/chihlee-calendar"
)

type areaFlags []string

func (a *areaFlags) String() string { return strings.Join(*a, ",") }
func (a *areaFlags) Set(v string) error {
	*a = append(*a, v)
	return nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	input := flag.String("i", "", "input PDF path")
	output := flag.String("o", "", "output CSV path")
	pages := flag.String("pages", "", "1-based page selection, e.g. 1-3,5")
	delimiter := flag.String("delimiter", ",", "single-byte CSV delimiter")
	hasHeader := flag.Bool("has-header", false, "treat the first row of every table as a header")
	noHeader := flag.Bool("no-header", false, "treat every row as data, never a header")
	minCols := flag.Int("min-cols", 2, "minimum cell count for a line to join a table")
	cleanCalendar := flag.Bool("clean-calendar", false, "enable the calendar-specific cleaning pass")
	noPage := flag.Bool("nopage", false, "drop the page column")
	noTable := flag.Bool("notable", false, "drop the table_id column")
	customColName := flag.String("custom-col-name", "", "rename col_1,col_2, e.g. date,event")
	verbose := flag.Bool("v", false, "print one line per warning to stderr")
	var areas areaFlags
	flag.Var(&areas, "area", "manual recovery hint page:x1,y1,x2,y2 (repeatable)")

	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "extract: -i and -o are required")
		os.Exit(1)
	}
	if *hasHeader && *noHeader {
		fmt.Fprintln(os.Stderr, "extract: --has-header and --no-header are mutually exclusive")
		os.Exit(1)
	}
	if len(*delimiter) != 1 {
		fmt.Fprintln(os.Stderr, "extract: --delimiter must be a single character")
		os.Exit(1)
	}

	opts := []chihlee.Option{
		chihlee.WithDelimiter((*delimiter)[0]),
		chihlee.WithMinCols(*minCols),
	}
	if *pages != "" {
		opts = append(opts, chihlee.WithPages(*pages))
	}
	if len(areas) > 0 {
		opts = append(opts, chihlee.WithAreas(areas...))
	}
	switch {
	case *hasHeader:
		opts = append(opts, chihlee.WithHeaderMode(chihlee.HeaderHasHeader))
	case *noHeader:
		opts = append(opts, chihlee.WithHeaderMode(chihlee.HeaderNoHeader))
	}
	if *cleanCalendar {
		opts = append(opts, chihlee.WithCleanCalendar())
	}
	if *noPage {
		opts = append(opts, chihlee.WithNoPage())
	}
	if *noTable {
		opts = append(opts, chihlee.WithNoTable())
	}
	if *customColName != "" {
		names := strings.SplitN(*customColName, ",", 2)
		if len(names) != 2 || names[0] == "" || names[1] == "" {
			fmt.Fprintln(os.Stderr, "extract: --custom-col-name requires two non-empty names, e.g. date,event")
			os.Exit(1)
		}
		opts = append(opts, chihlee.WithCustomColNames(names[0], names[1]))
	}

	report, err := chihlee.ExtractPDFToCSV(*input, *output, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(1)
	}

	for _, w := range report.Warnings {
		if *verbose {
			fmt.Fprintln(os.Stderr, chihlee.FormatWarning(w))
		}
	}
	if !*verbose && len(report.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "extract: %d warning(s); rerun with -v for details\n", len(report.Warnings))
	}

	if report.RowCount == 0 {
		os.Exit(2)
	}
}
