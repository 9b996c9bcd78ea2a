package storage

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiscal/internal"
	"fiscal/internal/util"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "fiscal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveRunRoundTrip(t *testing.T) {
	db := openTestDB(t)
	rows := []internal.Liquidation{
		{LineNo: 3, Data: util.ParseDate("20/03/2024"), Fornecedor: "ACME - 12.345.678/0001-99", FornecedorLimpo: "ACME", Valor: decimal.RequireFromString("1234.56"), TipoLicitacao: "Pregão", Empenho: "2024/1"},
		{LineNo: 1, Data: nil, Fornecedor: "JOSÉ", FornecedorLimpo: "JOSÉ", Valor: decimal.RequireFromString("0.44"), TipoLicitacao: "Dispensa", Empenho: "2024/2"},
		{LineNo: 2, Data: util.ParseDate("01/02/2024"), Fornecedor: "BETA", FornecedorLimpo: "BETA", Valor: decimal.NewFromInt(10), TipoLicitacao: "Pregão", Empenho: "2024/3"},
	}

	run, err := db.SaveRun("/tmp/liquidacoes.csv", "abc123", rows)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 3, run.Rows)
	assert.True(t, run.Total.Equal(decimal.NewFromInt(1245)), "total=%s", run.Total)
	require.NotNil(t, run.FirstDate)
	assert.Equal(t, "01/02/2024", util.FormatDate(run.FirstDate))
	assert.Equal(t, "20/03/2024", util.FormatDate(run.LastDate))
	assert.NotEmpty(t, run.CreatedAt)

	got, err := db.GetRunLiquidations(run.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].LineNo, "snapshot keeps table order")
	assert.Nil(t, got[1].Data)
	assert.Equal(t, "JOSÉ", got[1].FornecedorLimpo)
	assert.True(t, got[0].Valor.Equal(decimal.RequireFromString("1234.56")))
}

func TestListRuns(t *testing.T) {
	db := openTestDB(t)
	_, err := db.SaveRun("a.csv", "1", nil)
	require.NoError(t, err)
	second, err := db.SaveRun("b.csv", "2", nil)
	require.NoError(t, err)

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Nil(t, runs[0].FirstDate)
	assert.True(t, runs[0].Total.IsZero())

	limited, err := db.ListRuns(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	missing, err := db.GetRun("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMetadata(t *testing.T) {
	db := openTestDB(t)
	v, err := db.GetMetadata("watch.last_export")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, db.SetMetadata("watch.last_export", "2024-04-01T00:00:00Z"))
	require.NoError(t, db.SetMetadata("watch.last_export", "2024-04-02T00:00:00Z"))
	v, err = db.GetMetadata("watch.last_export")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "2024-04-02T00:00:00Z", *v)
}
