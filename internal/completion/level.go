// Package completion defines the completion-level buckets used to classify fact sheets.
package completion

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a discretized completion bucket. The known domain is 0..4, but any
// integer is accepted so that unexpected buckets flow through opaquely.
type Level int

const (
	Empty    Level = 0
	Low      Level = 1
	Partial  Level = 2
	High     Level = 3
	Complete Level = 4
)

// missingPercentage stands in for a fact sheet without a completion percentage.
const missingPercentage = -1.0

var labels = map[Level]string{
	Empty:    "(empty)",
	Low:      "<25% complete",
	Partial:  "26–75% complete",
	High:     "76–99% complete",
	Complete: "100% complete",
}

// LevelFor maps a raw completion percentage to its bucket.
// A nil percentage is treated as the -1 sentinel, so only values above -1 are
// bucketed; 0 falls into Low and anything from 100 upwards into Complete.
func LevelFor(percentage *float64) Level {
	p := missingPercentage
	if percentage != nil {
		p = *percentage
	}

	if p <= missingPercentage {
		return Empty
	}
	switch {
	case p <= 25:
		return Low
	case p <= 75:
		return Partial
	case p < 100:
		return High
	default:
		return Complete
	}
}

// Label returns the human label of a known level.
func Label(l Level) (string, bool) {
	s, ok := labels[l]
	return s, ok
}

// LabelFor returns the label of l, or "unknown?: <l>" for levels outside the domain.
func LabelFor(l Level) string {
	if s, ok := labels[l]; ok {
		return s
	}
	return fmt.Sprintf("unknown?: %d", l)
}

// Known reports whether l is one of the five defined buckets.
func (l Level) Known() bool {
	_, ok := labels[l]
	return ok
}

func (l Level) String() string {
	return LabelFor(l)
}

// Color is a translucent RGB fill used for a level's bar segment.
type Color struct {
	R, G, B uint8
	A       float64
	Name    string // named CSS color, set only for the fallback
}

var palette = []Color{
	{R: 255, G: 0, B: 0, A: 0.8},
	{R: 255, G: 128, B: 0, A: 0.8},
	{R: 255, G: 255, B: 0, A: 0.8},
	{R: 102, G: 204, B: 0, A: 0.8},
}

// Fallback is used for every level without a palette entry, Complete included.
var Fallback = Color{A: 1, Name: "black"}

// ColorFor returns the palette color of l, falling back for l < 0 or l >= 4.
func ColorFor(l Level) Color {
	if l < 0 || int(l) >= len(palette) {
		return Fallback
	}
	return palette[l]
}

// CSS renders the color the way Chart.js expects it.
func (c Color) CSS() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("rgb(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Hex renders the opaque RGB part as RRGGBB, as spreadsheet fills expect.
func (c Color) Hex() string {
	return strings.ToUpper(fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B))
}
