package visuals

import (
	"fmt"
	"math"
	"strings"

	"architect-report/internal/report"
)

// GenerateCompletionChart creates a Mermaid xychart-beta with one stacked bar per architect.
// xychart has no native stacking, so each level is drawn as the cumulative total up to
// that level, tallest first, letting the shorter bars overpaint the bottom of the taller ones.
func GenerateCompletionChart(rep *report.Report, title string) string {
	if rep == nil || len(rep.People) == 0 || len(rep.Series) == 0 {
		return ""
	}
	if title == "" {
		title = DefaultTitle
	}

	var labels []string
	for _, name := range rep.Labels() {
		labels = append(labels, fmt.Sprintf("\"%s\"", mermaidSafe(name)))
	}

	cumulative := make([][]int, len(rep.Series))
	for k, s := range rep.Series {
		cumulative[k] = make([]int, len(s.Values))
		for i, v := range s.Values {
			cumulative[k][i] = v
			if k > 0 {
				cumulative[k][i] += cumulative[k-1][i]
			}
		}
	}

	var colors []string
	for k := len(rep.Series) - 1; k >= 0; k-- {
		colors = append(colors, rep.Series[k].Color.CSS())
	}

	maxVal := rep.MaxTotal()

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("%%%%{init: {\"themeVariables\": {\"xyChart\": {\"plotColorPalette\": \"%s\"}}}}%%%%\n", strings.Join(colors, ", ")))
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", mermaidSafe(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Subscriptions\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	for k := len(cumulative) - 1; k >= 0; k-- {
		values := make([]string, len(cumulative[k]))
		for i, v := range cumulative[k] {
			values[i] = fmt.Sprintf("%d", v)
		}
		sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateLegend lists the levels of the chart with their colors, bottom segment first.
func GenerateLegend(rep *report.Report) string {
	if rep == nil || len(rep.Series) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, s := range rep.Series {
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", s.Label, s.Color.CSS()))
	}
	return sb.String()
}

func mermaidSafe(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
