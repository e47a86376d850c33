package completion

import "testing"

func pct(v float64) *float64 { return &v }

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want Level
	}{
		{"missing", nil, Empty},
		{"sentinel value", pct(-1), Empty},
		{"below sentinel", pct(-5), Empty},
		{"just above sentinel", pct(-0.5), Low},
		{"zero is low", pct(0), Low},
		{"25 inclusive", pct(25), Low},
		{"just above 25", pct(25.01), Partial},
		{"75 inclusive", pct(75), Partial},
		{"just above 75", pct(75.5), High},
		{"99.9", pct(99.9), High},
		{"exactly 100", pct(100), Complete},
		{"above 100", pct(120), Complete},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.in); got != tt.want {
			t.Errorf("%s: LevelFor = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{Empty, "(empty)"},
		{Low, "<25% complete"},
		{Partial, "26–75% complete"},
		{High, "76–99% complete"},
		{Complete, "100% complete"},
		{7, "unknown?: 7"},
		{-2, "unknown?: -2"},
	}

	for _, tt := range tests {
		if got := LabelFor(tt.level); got != tt.want {
			t.Errorf("LabelFor(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}

	if _, ok := Label(9); ok {
		t.Error("Label(9) reported a known level")
	}
	if Level(9).Known() || !Complete.Known() {
		t.Error("Known() disagrees with the label table")
	}
}

func TestColorFor(t *testing.T) {
	tests := []struct {
		level   Level
		wantCSS string
		wantHex string
	}{
		{Empty, "rgb(255,0,0,0.8)", "FF0000"},
		{Low, "rgb(255,128,0,0.8)", "FF8000"},
		{Partial, "rgb(255,255,0,0.8)", "FFFF00"},
		{High, "rgb(102,204,0,0.8)", "66CC00"},
		{Complete, "black", "000000"},
		{-1, "black", "000000"},
		{12, "black", "000000"},
	}

	for _, tt := range tests {
		c := ColorFor(tt.level)
		if got := c.CSS(); got != tt.wantCSS {
			t.Errorf("ColorFor(%d).CSS() = %q, want %q", tt.level, got, tt.wantCSS)
		}
		if got := c.Hex(); got != tt.wantHex {
			t.Errorf("ColorFor(%d).Hex() = %q, want %q", tt.level, got, tt.wantHex)
		}
	}
}
