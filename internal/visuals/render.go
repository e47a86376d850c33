package visuals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"architect-report/internal/report"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Output formats understood by RenderAll.
const (
	FormatMermaid = "mermaid"
	FormatJSON    = "json"
	FormatHTML    = "html"
	FormatXLSX    = "xlsx"
)

var fileNames = map[string]string{
	FormatMermaid: "architect-completion.md",
	FormatJSON:    "architect-completion.json",
	FormatHTML:    "architect-completion.html",
	FormatXLSX:    "architect-completion.xlsx",
}

// Options control rendering.
type Options struct {
	Title string
	// Links holds one inventory URL per person, used by the HTML chart.
	Links []string
}

// ParseFormats validates a list of format names, dropping duplicates.
func ParseFormats(formats []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if _, ok := fileNames[f]; !ok {
			return nil, fmt.Errorf("unknown format %q (available: mermaid, json, html, xlsx)", f)
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// Render produces a single format in memory.
func Render(format string, rep *report.Report, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatMermaid:
		buf.WriteString(GenerateCompletionChart(rep, opts.Title))
		if legend := GenerateLegend(rep); legend != "" {
			buf.WriteString("\n\n")
			buf.WriteString(legend)
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ChartJSData(rep)); err != nil {
			return nil, fmt.Errorf("failed to encode chart data: %w", err)
		}
	case FormatHTML:
		if err := RenderHTML(&buf, opts.Title, ChartJSData(rep), opts.Links); err != nil {
			return nil, err
		}
	case FormatXLSX:
		if err := WriteWorkbook(&buf, rep, opts.Title); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return buf.Bytes(), nil
}

// RenderAll writes every format into dir concurrently and returns the written paths
// in the order of formats.
func RenderAll(ctx context.Context, dir string, rep *report.Report, formats []string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := Render(format, rep, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			path := filepath.Join(dir, fileNames[format])
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			log.Debug().Str("format", format).Str("path", path).Int("bytes", len(data)).Msg("Rendered report")
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
