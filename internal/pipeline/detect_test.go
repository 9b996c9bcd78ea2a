package pipeline

import (
	"errors"
	"testing"

	"fiscal/internal"
)

func TestMatchRole(t *testing.T) {
	cases := []struct {
		header string
		want   internal.Role
		ok     bool
	}{
		{header: "Data da Liquidação", want: internal.RoleData, ok: true},
		{header: "Data de Pagamento", ok: false},
		{header: "Fornecedor", want: internal.RoleFornecedor, ok: true},
		{header: "Valor Liquidado", want: internal.RoleValor, ok: true},
		{header: "Tipo de Licitação", want: internal.RoleTipoLicitacao, ok: true},
		{header: "Tipo de Documento", ok: false},
		{header: "Nº Empenho", want: internal.RoleEmpenho, ok: true},
		{header: "valor", ok: false},
		// first rule wins when several match
		{header: "Valor do Empenho", want: internal.RoleValor, ok: true},
		{header: "Fornecedor - Valor", want: internal.RoleFornecedor, ok: true},
		{header: "Data Liquidação Empenho", want: internal.RoleData, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			got, ok := MatchRole(tc.header)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("got (%q,%v) want (%q,%v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestDiscoverColumns(t *testing.T) {
	headers := []string{"Data da Liquidação", "Data de Pagamento", "Empenho", "Fornecedor", "Valor", "Tipo de Licitação", "Data do Empenho"}
	cols, err := DiscoverColumns(headers)
	if err != nil {
		t.Fatal(err)
	}
	if len(cols.Columns) != 5 {
		t.Fatalf("len=%d", len(cols.Columns))
	}
	if cols.Index(internal.RoleData) != 0 || cols.Index(internal.RoleEmpenho) != 2 || cols.Index(internal.RoleValor) != 4 {
		t.Fatalf("unexpected indexes: %+v", cols.Columns)
	}
	rename := cols.Rename()
	if rename["Data da Liquidação"] != "data" || rename["Tipo de Licitação"] != "tipo_licitacao" {
		t.Fatalf("rename=%v", rename)
	}
	if _, ok := rename["Data de Pagamento"]; ok {
		t.Fatalf("unmatched header kept")
	}
	if _, ok := rename["Data do Empenho"]; ok {
		t.Fatalf("second empenho header should be dropped")
	}
}

func TestDiscoverColumnsMissing(t *testing.T) {
	_, err := DiscoverColumns([]string{"Data de Pagamento", "Fornecedor", "Valor", "Empenho"})
	var cnf *ColumnNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
	if cnf.Role != internal.RoleData {
		t.Fatalf("role=%s", cnf.Role)
	}
	if len(cnf.Missing) != 2 || cnf.Missing[1] != internal.RoleTipoLicitacao {
		t.Fatalf("missing=%v", cnf.Missing)
	}
	if got := (&ColumnNotFoundError{Role: internal.RoleValor}).Error(); got != "required column not found: valor" {
		t.Fatalf("message=%q", got)
	}
}
