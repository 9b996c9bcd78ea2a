package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"fiscal/internal"
	"fiscal/internal/util"
)

const (
	supplierWidth = 40
	reportMonths  = 6
	rule          = "=================================================="
)

// WriteTable prints up to limit rows (all when limit <= 0). A nil or empty
// table still prints the placeholder header.
func WriteTable(w io.Writer, t *internal.Table, loc util.Locale, limit int) {
	tw := newTableWriter(w)
	tw.SetHeader(internal.PlaceholderColumns)
	if !t.Empty() {
		rows := t.Rows
		if limit > 0 && limit < len(rows) {
			rows = rows[:limit]
		}
		for _, r := range rows {
			tw.Append([]string{
				util.FormatDate(r.Data),
				r.FornecedorLimpo,
				util.FormatAmount(r.Valor, loc),
				r.TipoLicitacao,
				r.Empenho,
			})
		}
	}
	tw.Render()
}

func WriteMetrics(w io.Writer, metrics []Metric) {
	tw := newTableWriter(w)
	tw.SetHeader([]string{"métrica", "valor", "detalhe"})
	for _, m := range metrics {
		tw.Append([]string{m.Label, m.Value, m.Delta})
	}
	tw.Render()
}

// WriteSummary prints the top suppliers, the totals per bidding type and
// the months with the highest spending.
func WriteSummary(w io.Writer, t *internal.Table, loc util.Locale, topN int) {
	if t.Empty() {
		fmt.Fprintln(w, "Nenhum dado para gerar relatório")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "RELATÓRIO RESUMO - LIQUIDAÇÕES PAGAS")
	fmt.Fprintln(w, rule)

	top := TopN(BySupplier(t.Rows), topN)
	fmt.Fprintf(w, "\nTOP %d FORNECEDORES POR VALOR:\n", len(top))
	for i, g := range top {
		name := util.Truncate(g.Key, supplierWidth)
		fmt.Fprintf(w, "%2d. %s %s %s\n", i+1, padRight(name, supplierWidth), loc.Symbol, padLeft(util.FormatAmount(g.Total, loc), 12))
	}

	fmt.Fprintln(w, "\nGASTOS POR TIPO DE LICITAÇÃO:")
	for _, g := range TopN(ByBiddingType(t.Rows), 0) {
		fmt.Fprintf(w, "   %s %s %s\n", padRight(g.Key, 30), loc.Symbol, padLeft(util.FormatAmount(g.Total, loc), 12))
	}

	fmt.Fprintln(w, "\nGASTOS POR MÊS:")
	for _, g := range TopN(ByMonth(t.Rows), reportMonths) {
		fmt.Fprintf(w, "   %s %s %s\n", padRight(g.Key, 15), loc.Symbol, padLeft(util.FormatAmount(g.Total, loc), 12))
	}
}

func WriteStats(w io.Writer, s Summary, loc util.Locale) {
	fmt.Fprintln(w, "\nESTATÍSTICAS FINAIS:")
	fmt.Fprintf(w, "   Total de registros: %d\n", s.Count)
	fmt.Fprintf(w, "   Valor total: %s\n", util.FormatCurrency(s.Total, loc))
	fmt.Fprintf(w, "   Valor médio: %s\n", util.FormatCurrency(s.Mean, loc))
	fmt.Fprintf(w, "   Maior valor: %s\n", util.FormatCurrency(s.Max, loc))
	fmt.Fprintf(w, "   Menor valor: %s\n", util.FormatCurrency(s.Min, loc))
	if s.FirstDate != nil {
		fmt.Fprintf(w, "   Período: %s a %s\n", util.FormatDate(s.FirstDate), util.FormatDate(s.LastDate))
	}
}

func newTableWriter(w io.Writer) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	return tw
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func padLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
