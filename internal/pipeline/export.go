package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fiscal/internal"
	"fiscal/internal/report"
	"fiscal/internal/util"
)

const (
	SheetData      = "Liquidacoes"
	SheetSuppliers = "Fornecedores"
	SheetTypes     = "Licitacoes"
	SheetMonthly   = "Mensal"
	SheetSummary   = "Resumo"

	pieSlices = 5
)

// ExportTableToXLSX writes the table, its groupings and the charts to a
// workbook. A nil or empty table produces only the placeholder header row,
// the same columns the text table prints when nothing was loaded.
func ExportTableToXLSX(t *internal.Table, outputPath string, topN int, loc util.Locale) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetData); err != nil {
		return err
	}
	dateFmt := "dd/mm/yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	if t.Empty() {
		_ = f.SetSheetRow(SheetData, "A1", &internal.PlaceholderColumns)
	} else {
		_ = f.SetSheetRow(SheetData, "A1", &internal.Columns)
		for i, row := range t.Rows {
			r := i + 2
			set := func(col int, value any) {
				cell, _ := excelize.CoordinatesToCellName(col, r)
				_ = f.SetCellValue(SheetData, cell, value)
			}
			if row.Data != nil {
				set(1, *row.Data)
			}
			set(2, row.Fornecedor)
			set(3, row.FornecedorLimpo)
			set(4, row.Valor.InexactFloat64())
			set(5, row.TipoLicitacao)
			set(6, row.Empenho)
		}
		last := len(t.Rows) + 1
		_ = f.SetCellStyle(SheetData, "A2", fmt.Sprintf("A%d", last), dateStyle)
		_ = f.SetCellStyle(SheetData, "D2", fmt.Sprintf("D%d", last), moneyStyle)

		if err := writeGroups(f, SheetSuppliers, "fornecedor_limpo", report.TopN(report.BySupplier(t.Rows), 0), moneyStyle); err != nil {
			return err
		}
		if err := writeGroups(f, SheetTypes, "tipo_licitacao", report.TopN(report.ByBiddingType(t.Rows), 0), moneyStyle); err != nil {
			return err
		}
		months := report.Chronological(report.ByMonth(t.Rows))
		if err := writeGroups(f, SheetMonthly, "mes_ano", months, moneyStyle); err != nil {
			return err
		}
		if err := writeSummary(f, report.Summarize(t.Rows), loc); err != nil {
			return err
		}
		if err := addCharts(f, topN, len(months)); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeGroups(f *excelize.File, sheet, keyHeader string, groups []report.GroupTotal, moneyStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	_ = f.SetSheetRow(sheet, "A1", &[]any{keyHeader, "valor", "registros"})
	for i, g := range groups {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &[]any{g.Key, g.Total.InexactFloat64(), g.Count})
	}
	if len(groups) > 0 {
		_ = f.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", len(groups)+1), moneyStyle)
	}
	return nil
}

func writeSummary(f *excelize.File, s report.Summary, loc util.Locale) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	_ = f.SetSheetRow(SheetSummary, "A1", &[]any{"métrica", "valor", "detalhe"})
	for i, m := range report.Metrics(s, loc) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(SheetSummary, cell, &[]any{m.Label, m.Value, m.Delta})
	}
	return nil
}

func addCharts(f *excelize.File, topN, months int) error {
	suppliers, _ := f.GetRows(SheetSuppliers)
	n := len(suppliers) - 1
	if topN > 0 && topN < n {
		n = topN
	}
	if n > 0 {
		if err := f.AddChart(SheetSummary, "E2", &excelize.Chart{
			Type: excelize.Bar,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", SheetSuppliers),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetSuppliers, n+1),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetSuppliers, n+1),
			}},
			Title:  []excelize.RichTextRun{{Text: fmt.Sprintf("Top %d por Valor", n)}},
			Legend: excelize.ChartLegend{Position: "none"},
		}); err != nil {
			return fmt.Errorf("add supplier chart: %w", err)
		}

		slices := min(n, pieSlices)
		if err := f.AddChart(SheetSummary, "E20", &excelize.Chart{
			Type: excelize.Pie,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", SheetSuppliers),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetSuppliers, slices+1),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetSuppliers, slices+1),
			}},
			Title:    []excelize.RichTextRun{{Text: fmt.Sprintf("Top %d - Participação (%%)", slices)}},
			PlotArea: excelize.ChartPlotArea{ShowPercent: true},
		}); err != nil {
			return fmt.Errorf("add share chart: %w", err)
		}
	}

	if months > 0 {
		if err := f.AddChart(SheetSummary, "E38", &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", SheetMonthly),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetMonthly, months+1),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetMonthly, months+1),
				Marker:     excelize.ChartMarker{Symbol: "circle"},
			}},
			Title:  []excelize.RichTextRun{{Text: "Gastos por Mês"}},
			Legend: excelize.ChartLegend{Position: "none"},
		}); err != nil {
			return fmt.Errorf("add monthly chart: %w", err)
		}
	}
	return nil
}
