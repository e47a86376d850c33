package visuals

import (
	"fmt"
	"io"

	"architect-report/internal/report"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the completion matrix.
const SheetName = "Completion"

// WriteWorkbook writes the person × level matrix as a worksheet with a stacked
// column chart next to it. Columns: Architect, ID, one per level, Total.
func WriteWorkbook(w io.Writer, rep *report.Report, title string) error {
	if title == "" {
		title = DefaultTitle
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := []any{"Architect", "ID"}
	for _, s := range rep.Series {
		header = append(header, s.Label)
	}
	header = append(header, "Total")
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, p := range rep.People {
		row := []any{p.Name, p.ID}
		for _, s := range rep.Series {
			row = append(row, s.Values[i])
		}
		row = append(row, p.Total())

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", p.ID, err)
		}
	}

	if len(rep.People) > 0 && len(rep.Series) > 0 {
		if err := addStackedChart(f, rep, title, len(header)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func addStackedChart(f *excelize.File, rep *report.Report, title string, headerCols int) error {
	lastRow := len(rep.People) + 1
	categories := fmt.Sprintf("'%s'!$A$2:$A$%d", SheetName, lastRow)

	series := make([]excelize.ChartSeries, 0, len(rep.Series))
	for k, s := range rep.Series {
		col, err := excelize.ColumnNumberToName(k + 3)
		if err != nil {
			return err
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", SheetName, col),
			Categories: categories,
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", SheetName, col, col, lastRow),
			Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.Color.Hex()}},
		})
	}

	anchor, err := excelize.CoordinatesToCellName(headerCols+2, 1)
	if err != nil {
		return err
	}
	if err := f.AddChart(SheetName, anchor, &excelize.Chart{
		Type:   excelize.ColStacked,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{
			Width:  uint(480 + 40*len(rep.People)),
			Height: 360,
		},
	}); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}
