package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleData          Role = "data"
	RoleFornecedor    Role = "fornecedor"
	RoleValor         Role = "valor"
	RoleTipoLicitacao Role = "tipo_licitacao"
	RoleEmpenho       Role = "empenho"

	ColFornecedorLimpo = "fornecedor_limpo"
)

// Columns is the canonical column order of a Table.
var Columns = []string{
	string(RoleData),
	string(RoleFornecedor),
	ColFornecedorLimpo,
	string(RoleValor),
	string(RoleTipoLicitacao),
	string(RoleEmpenho),
}

// PlaceholderColumns is what presentation shows when no data could be loaded.
var PlaceholderColumns = []string{
	string(RoleData),
	ColFornecedorLimpo,
	string(RoleValor),
	string(RoleTipoLicitacao),
	string(RoleEmpenho),
}

// Liquidation is one paid liquidation after normalization.
type Liquidation struct {
	LineNo          int
	Data            *time.Time
	Fornecedor      string
	FornecedorLimpo string
	Valor           decimal.Decimal
	TipoLicitacao   string
	Empenho         string
}

type Table struct {
	Columns []string
	Rows    []Liquidation
}

func NewTable(rows []Liquidation) *Table {
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return &Table{Columns: cols, Rows: rows}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) Empty() bool {
	return t.Len() == 0
}

type RunRow struct {
	ID         string
	SourcePath string
	Checksum   string
	Rows       int
	Total      decimal.Decimal
	FirstDate  *time.Time
	LastDate   *time.Time
	CreatedAt  string
}
