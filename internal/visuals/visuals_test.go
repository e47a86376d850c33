package visuals

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"architect-report/internal/report"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func scenarioReport() *report.Report {
	return report.Build([]report.Record{
		{PersonID: "p1", PersonName: "Alice", Level: 1},
		{PersonID: "p1", PersonName: "Alice", Level: 1},
		{PersonID: "p2", PersonName: "Bob", Level: 4},
	})
}

func TestChartJSData(t *testing.T) {
	got := ChartJSData(scenarioReport())
	want := ChartData{
		Labels: []string{"Alice", "Bob"},
		Datasets: []Dataset{
			{Label: "<25% complete", Data: []int{2, 0}, BackgroundColor: "rgb(255,128,0,0.8)", Stack: "bar", BarPercentage: 1},
			{Label: "100% complete", Data: []int{0, 1}, BackgroundColor: "black", Stack: "bar", BarPercentage: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chart data mismatch (-want +got):\n%s", diff)
	}
}

func TestChartJSData_Empty(t *testing.T) {
	data, err := json.Marshal(ChartJSData(report.Build(nil)))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"labels":[],"datasets":[]}` {
		t.Errorf("unexpected empty chart: %s", data)
	}
}

func TestGenerateCompletionChart(t *testing.T) {
	rep := report.Build([]report.Record{
		{PersonID: "p1", PersonName: `Alice "Al"`, Level: 0},
		{PersonID: "p1", PersonName: "Alice", Level: 2},
		{PersonID: "p2", PersonName: "Bob", Level: 2},
		{PersonID: "p2", PersonName: "Bob", Level: 2},
		{PersonID: "p2", PersonName: "Bob", Level: 3},
	})

	chart := GenerateCompletionChart(rep, "")
	if !strings.HasPrefix(chart, "```mermaid\n%%{init:") || !strings.HasSuffix(chart, "```") {
		t.Fatalf("unexpected chart framing:\n%s", chart)
	}
	if !strings.Contains(chart, `x-axis ["Alice 'Al'", "Bob"]`) {
		t.Errorf("labels not quoted safely:\n%s", chart)
	}

	// Levels 0, 2, 3 drawn as cumulative totals, tallest first.
	idx3 := strings.Index(chart, "bar [2, 3]")
	idx2 := strings.Index(chart, "bar [2, 2]")
	idx0 := strings.Index(chart, "bar [1, 0]")
	if idx3 < 0 || idx2 < 0 || idx0 < 0 || !(idx3 < idx2 && idx2 < idx0) {
		t.Errorf("cumulative bars missing or out of order:\n%s", chart)
	}
	if !strings.Contains(chart, `"plotColorPalette": "rgb(102,204,0,0.8), rgb(255,255,0,0.8), rgb(255,0,0,0.8)"`) {
		t.Errorf("palette not reversed to match draw order:\n%s", chart)
	}
	if !strings.Contains(chart, "y-axis \"Subscriptions\" 0 --> 4") {
		t.Errorf("unexpected y-axis scaling:\n%s", chart)
	}
}

func TestGenerateCompletionChart_Empty(t *testing.T) {
	if got := GenerateCompletionChart(report.Build(nil), "x"); got != "" {
		t.Errorf("expected empty chart, got %q", got)
	}
	if got := GenerateLegend(nil); got != "" {
		t.Errorf("expected empty legend, got %q", got)
	}
}

func TestRenderHTML(t *testing.T) {
	rep := report.Build([]report.Record{{PersonID: "p1", PersonName: "</script><b>x</b>", Level: 1}})

	var buf bytes.Buffer
	links := []string{"https://eu.leanix.net/acme/inventory?facetFilters=x"}
	if err := RenderHTML(&buf, "Coverage <Q3>", ChartJSData(rep), links); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	page := buf.String()

	if strings.Count(page, "</script>") != 3 {
		t.Errorf("person name escaped the data element:\n%s", page)
	}
	if !strings.Contains(page, "<title>Coverage &lt;Q3&gt;</title>") {
		t.Errorf("title not escaped:\n%s", page)
	}
	if !strings.Contains(page, "invalid architect id") {
		t.Errorf("navigation guard missing from script")
	}
	if strings.Contains(page, "architectIndex") {
		t.Errorf("script was not minified")
	}
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, scenarioReport(), ""); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("workbook not readable: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	want := [][]string{
		{"Architect", "ID", "<25% complete", "100% complete", "Total"},
		{"Alice", "p1", "2", "0", "2"},
		{"Bob", "p2", "0", "1", "1"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, report.Build(nil), ""); err != nil {
		t.Fatalf("WriteWorkbook failed for empty report: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a workbook even without data")
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"HTML", " json", "html", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "json"}, got); diff != "" {
		t.Errorf("formats mismatch:\n%s", diff)
	}
	if _, err := ParseFormats([]string{"pdf"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRenderAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	formats := []string{FormatMermaid, FormatJSON, FormatHTML, FormatXLSX}

	paths, err := RenderAll(context.Background(), dir, scenarioReport(), formats, Options{})
	if err != nil {
		t.Fatalf("RenderAll failed: %v", err)
	}
	if len(paths) != len(formats) {
		t.Fatalf("expected %d paths, got %d", len(formats), len(paths))
	}
	for i, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s: missing or empty output %s (%v)", formats[i], p, err)
		}
	}

	md, _ := os.ReadFile(paths[0])
	if !strings.Contains(string(md), "- <25% complete (rgb(255,128,0,0.8))") {
		t.Errorf("legend missing from markdown:\n%s", md)
	}
}
