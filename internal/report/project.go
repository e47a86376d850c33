package report

import "architect-report/internal/completion"

// Series is one stacked-bar dataset: the counts of a single level, aligned with
// the people it was projected from.
type Series struct {
	Level  completion.Level `json:"level"`
	Label  string           `json:"label"`
	Values []int            `json:"values"`
	Color  completion.Color `json:"-"`
}

// Project turns aggregates into one series per level, in the order of levels.
// People without records at a level contribute 0.
func Project(people []PersonAggregate, levels []completion.Level) []Series {
	series := make([]Series, 0, len(levels))
	for _, level := range levels {
		values := make([]int, len(people))
		for i, p := range people {
			values[i] = p.Counts[level]
		}
		series = append(series, Series{
			Level:  level,
			Label:  completion.LabelFor(level),
			Values: values,
			Color:  completion.ColorFor(level),
		})
	}
	return series
}
