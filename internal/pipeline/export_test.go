package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"fiscal/internal"
	"fiscal/internal/util"
)

func TestExportTableToXLSX(t *testing.T) {
	path := writeLatin1CSV(t,
		"15/03/2024;1;ACME LTDA - 12.345.678/0001-99;1.234,56;Pregão;",
		"10/02/2024;2;BETA SA;100,00;Dispensa;",
		"11/02/2024;3;ACME LTDA;65,44;Pregão;",
		"xx;4;GAMA;1,00;Pregão;",
	)
	res, err := newTestProcessor().Process(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "nested", "liquidacoes.xlsx")
	if err := ExportTableToXLSX(res.Table, out, 10, util.LocaleBR); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetData)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("data rows=%d", len(rows))
	}
	if rows[0][2] != "fornecedor_limpo" || rows[1][2] != "ACME LTDA" {
		t.Fatalf("unexpected data sheet: %v", rows[:2])
	}

	suppliers, err := f.GetRows(SheetSuppliers)
	if err != nil {
		t.Fatal(err)
	}
	if len(suppliers) != 4 || suppliers[1][0] != "ACME LTDA" {
		t.Fatalf("suppliers=%v", suppliers)
	}
	total, err := f.GetCellValue(SheetSuppliers, "B2", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatal(err)
	}
	if total != "1300" {
		t.Fatalf("acme total=%q", total)
	}

	months, err := f.GetRows(SheetMonthly)
	if err != nil {
		t.Fatal(err)
	}
	if len(months) != 3 || months[1][0] != "2024-02" || months[2][0] != "2024-03" {
		t.Fatalf("months=%v", months)
	}

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) < 5 || summary[1][1] != "R$ 1.401,00" {
		t.Fatalf("summary=%v", summary)
	}
}

func TestExportEmptyTable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ExportTableToXLSX(internal.NewTable(nil), out, 10, util.LocaleBR); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetData {
		t.Fatalf("sheets=%v", sheets)
	}
	rows, err := f.GetRows(SheetData)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || len(rows[0]) != len(internal.PlaceholderColumns) {
		t.Fatalf("rows=%v", rows)
	}
	for i, col := range internal.PlaceholderColumns {
		if rows[0][i] != col {
			t.Fatalf("header[%d]=%q want %q", i, rows[0][i], col)
		}
	}
}
