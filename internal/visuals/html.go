package visuals

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
)

// chartScript reads the embedded report data and wires bar clicks to inventory links.
const chartScript = `
const payload = JSON.parse(document.getElementById("report-data").textContent);

function navigateToInventory(architectIndex) {
  const link = payload.links[architectIndex];
  if (link === undefined || link === null || link === "") {
    throw new Error("invalid architect id");
  }
  window.open(link, "_blank");
}

new Chart(document.getElementById("chart"), {
  type: "bar",
  data: payload.chart,
  options: {
    responsive: true,
    maintainAspectRatio: false,
    plugins: {
      title: { display: true, text: payload.title },
      legend: { position: "bottom" }
    },
    scales: {
      x: { stacked: true },
      y: { stacked: true, beginAtZero: true, ticks: { precision: 0 } }
    },
    onClick: (event, elements) => {
      if (elements.length === 0) {
        return;
      }
      navigateToInventory(elements[0].index);
    }
  }
});
`

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>body{font-family:sans-serif;margin:0;padding:1rem}#wrap{position:relative;height:80vh}</style>
</head>
<body>
<div id="wrap"><canvas id="chart"></canvas></div>
<script type="application/json" id="report-data">{{.Payload}}</script>
<script>{{.Script}}</script>
</body>
</html>
`))

var (
	minifyOnce sync.Once
	minified   string
	minifyErr  error
)

// minifiedScript runs chartScript through esbuild once per process.
func minifiedScript() (string, error) {
	minifyOnce.Do(func() {
		result := api.Transform(chartScript, api.TransformOptions{
			Loader:            api.LoaderJS,
			MinifyWhitespace:  true,
			MinifyIdentifiers: true,
			MinifySyntax:      true,
			Target:            api.ES2017,
		})
		if len(result.Errors) > 0 {
			msgs := make([]string, len(result.Errors))
			for i, m := range result.Errors {
				msgs[i] = m.Text
			}
			minifyErr = fmt.Errorf("failed to minify chart script: %s", strings.Join(msgs, "; "))
			return
		}
		minified = string(result.Code)
	})
	return minified, minifyErr
}

type htmlPayload struct {
	Title string    `json:"title"`
	Chart ChartData `json:"chart"`
	Links []string  `json:"links"`
}

// RenderHTML writes a standalone page with a stacked Chart.js bar chart of data.
// links holds one inventory URL per label; clicking a bar opens the matching link.
func RenderHTML(w io.Writer, title string, data ChartData, links []string) error {
	if title == "" {
		title = DefaultTitle
	}
	if links == nil {
		links = []string{}
	}

	script, err := minifiedScript()
	if err != nil {
		return err
	}

	// json.Marshal escapes <, > and &, so the payload cannot close the script element.
	payload, err := json.Marshal(htmlPayload{Title: title, Chart: data, Links: links})
	if err != nil {
		return fmt.Errorf("failed to encode chart payload: %w", err)
	}

	return pageTemplate.Execute(w, struct {
		Title   string
		Payload template.JS
		Script  template.JS
	}{
		Title:   title,
		Payload: template.JS(payload),
		Script:  template.JS(script),
	})
}
