package cmd

import (
	"io"
	"reflect"
	"testing"

	"github.com/nhasan/jobwatch/internal/export"
	"github.com/nhasan/jobwatch/internal/runner"
)

func TestResolveFormatRespectsGlobalFlags(t *testing.T) {
	ctx := &Context{Out: io.Discard, JSONOutput: true}
	got, err := resolveFormat(ctx, "csv", "jobs.csv")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != export.FormatJSON {
		t.Fatalf("resolveFormat() = %q, want %q", got, export.FormatJSON)
	}

	ctx = &Context{Out: io.Discard, PlainText: true}
	got, err = resolveFormat(ctx, "", "jobs.tsv")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != export.FormatTSV {
		t.Fatalf("resolveFormat() = %q, want %q", got, export.FormatTSV)
	}
}

func TestResolveFormatDefaultsToCSVForFiles(t *testing.T) {
	ctx := &Context{Out: io.Discard}
	got, err := resolveFormat(ctx, "", "jobs.out")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != export.FormatCSV {
		t.Fatalf("resolveFormat() = %q, want %q", got, export.FormatCSV)
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		input string
		want  export.Format
	}{
		{"csv", export.FormatCSV},
		{"JSON", export.FormatJSON},
		{"md", export.FormatMarkdown},
		{"markdown", export.FormatMarkdown},
		{"tsv", export.FormatTSV},
		{"table", export.FormatTable},
		{"", export.FormatTable},
		{" csv ", export.FormatCSV},
	}
	for _, tc := range cases {
		got, err := parseFormat(tc.input)
		if err != nil {
			t.Fatalf("parseFormat(%q) error = %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseFormat(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	if _, err := parseFormat("yaml"); err == nil {
		t.Fatalf("parseFormat(yaml) should error")
	}
}

func TestFormatRunSummary(t *testing.T) {
	stats := runner.Stats{
		New:      3,
		Existing: 7,
		Errors:   1,
		BySource: map[string]runner.SourceStats{
			"therap": {Scraped: 5, New: 2, Existing: 3},
			"cefalo": {Scraped: 6, New: 1, Existing: 4, Errors: 1},
		},
	}

	got := formatRunSummary(stats)
	want := "summary: new=3 existing=7 errors=1 by_source=cefalo:1, therap:2"
	if got != want {
		t.Fatalf("formatRunSummary() = %q, want %q", got, want)
	}
}

func TestFormatRunSummaryEmpty(t *testing.T) {
	got := formatRunSummary(runner.Stats{})
	want := "summary: new=0 existing=0 errors=0 by_source=none"
	if got != want {
		t.Fatalf("formatRunSummary() = %q, want %q", got, want)
	}
}

func TestSplitCSVFlag(t *testing.T) {
	got := splitCSVFlag(" cefalo, therap ,, kaz ")
	want := []string{"cefalo", "therap", "kaz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSVFlag() = %v, want %v", got, want)
	}
}
