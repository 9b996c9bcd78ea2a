package pipeline

import (
	"context"
	"sort"

	"fiscal/internal"
	"fiscal/internal/util"
)

const ctxCheckEvery = 1024

type Stats struct {
	RowsRead     int
	Kept         int
	DroppedBlank int
	InvalidValue int
	NullDates    int
}

// Diagnostic describes a row-level problem that did not stop the run.
type Diagnostic struct {
	LineNo  int
	Field   internal.Role
	Value   string
	Message string
}

func normalizeRecords(ctx context.Context, raw rawTable, cols ColumnMap) ([]internal.Liquidation, Stats, []Diagnostic, error) {
	var (
		stats Stats
		diags []Diagnostic
	)
	idxData := cols.Index(internal.RoleData)
	idxFornecedor := cols.Index(internal.RoleFornecedor)
	idxValor := cols.Index(internal.RoleValor)
	idxTipo := cols.Index(internal.RoleTipoLicitacao)
	idxEmpenho := cols.Index(internal.RoleEmpenho)

	out := make([]internal.Liquidation, 0, len(raw.Records))
	for i, record := range raw.Records {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, diags, err
			}
		}
		stats.RowsRead++
		lineNo := i + 1

		fornecedor := field(record, idxFornecedor)
		valorRaw := field(record, idxValor)
		if util.IsBlank(fornecedor) || util.IsBlank(valorRaw) {
			stats.DroppedBlank++
			continue
		}

		valor, err := util.ParseBRL(valorRaw)
		if err != nil {
			stats.InvalidValue++
			diags = append(diags, Diagnostic{LineNo: lineNo, Field: internal.RoleValor, Value: valorRaw, Message: err.Error()})
			continue
		}

		dataRaw := field(record, idxData)
		data := util.ParseDate(dataRaw)
		if data == nil {
			stats.NullDates++
			if !util.IsBlank(dataRaw) {
				diags = append(diags, Diagnostic{LineNo: lineNo, Field: internal.RoleData, Value: dataRaw, Message: "unparseable date, kept as null"})
			}
		}

		out = append(out, internal.Liquidation{
			LineNo:          lineNo,
			Data:            data,
			Fornecedor:      fornecedor,
			FornecedorLimpo: util.CleanSupplierName(fornecedor),
			Valor:           valor,
			TipoLicitacao:   field(record, idxTipo),
			Empenho:         field(record, idxEmpenho),
		})
	}
	stats.Kept = len(out)
	return out, stats, diags, nil
}

// SortByDateDesc orders rows newest first. Rows without a date go last and
// equal dates keep source order.
func SortByDateDesc(rows []internal.Liquidation) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Data, rows[j].Data
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})
}
