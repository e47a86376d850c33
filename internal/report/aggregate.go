package report

import (
	"slices"

	"architect-report/internal/completion"
)

// Record is one architect subscription on a fact sheet, already bucketed.
type Record struct {
	PersonID   string           `json:"personId"`
	PersonName string           `json:"personName"`
	Level      completion.Level `json:"completionLevel"`
}

// PersonAggregate holds the per-level subscription counts of one person.
type PersonAggregate struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name"`
	Counts map[completion.Level]int `json:"counts"`
}

// Total returns the number of records folded into the aggregate.
func (p PersonAggregate) Total() int {
	total := 0
	for _, n := range p.Counts {
		total += n
	}
	return total
}

// Aggregate folds records into one PersonAggregate per distinct person ID, in
// order of first appearance, and returns the distinct levels seen in ascending order.
// The name of the first record for an ID is kept.
func Aggregate(records []Record) ([]PersonAggregate, []completion.Level) {
	people := make([]PersonAggregate, 0)
	index := make(map[string]int)
	seen := make(map[completion.Level]bool)
	levels := make([]completion.Level, 0)

	for _, rec := range records {
		i, ok := index[rec.PersonID]
		if !ok {
			i = len(people)
			index[rec.PersonID] = i
			people = append(people, PersonAggregate{
				ID:     rec.PersonID,
				Name:   rec.PersonName,
				Counts: make(map[completion.Level]int),
			})
		}
		people[i].Counts[rec.Level]++

		if !seen[rec.Level] {
			seen[rec.Level] = true
			levels = append(levels, rec.Level)
		}
	}

	slices.Sort(levels)
	return people, levels
}
