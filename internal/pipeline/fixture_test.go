package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const fixtureHeader = "Data da Liquidação;Empenho;Fornecedor;Valor;Tipo de Licitação;Data de Pagamento"

var fixtureMeta = []string{
	"PREFEITURA DO MUNICÍPIO DE MARINGÁ",
	"Liquidações pagas",
	"Emitido em 01/04/2024",
}

// writeLatin1CSV writes the metadata lines, header and rows the way the
// finance system exports them.
func writeLatin1CSV(t *testing.T, rows ...string) string {
	t.Helper()
	lines := append(append([]string{}, fixtureMeta...), fixtureHeader)
	lines = append(lines, rows...)
	content := strings.Join(lines, "\r\n") + "\r\n"

	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "liquidacoes.csv")
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
