// Package visuals renders completion reports as charts and spreadsheets.
package visuals

import (
	"architect-report/internal/report"
)

// DefaultTitle is used when no report title is configured.
const DefaultTitle = "Architect Fact Sheet Completion"

// ChartData is the data section of a Chart.js bar chart configuration.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one stacked segment series.
type Dataset struct {
	Label           string  `json:"label"`
	Data            []int   `json:"data"`
	BackgroundColor string  `json:"backgroundColor"`
	Stack           string  `json:"stack"`
	BarPercentage   float64 `json:"barPercentage"`
}

// ChartJSData projects a report into Chart.js data, one dataset per level, all on the same stack.
func ChartJSData(rep *report.Report) ChartData {
	data := ChartData{Labels: []string{}, Datasets: []Dataset{}}
	if rep == nil {
		return data
	}

	data.Labels = rep.Labels()
	for _, s := range rep.Series {
		data.Datasets = append(data.Datasets, Dataset{
			Label:           s.Label,
			Data:            s.Values,
			BackgroundColor: s.Color.CSS(),
			Stack:           "bar",
			BarPercentage:   1,
		})
	}
	return data
}
