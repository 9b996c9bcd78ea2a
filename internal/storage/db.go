package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fiscal/internal"
)

const isoDate = "2006-01-02"

// DB keeps the history of processed exports. The ingestion pipeline does
// not use it; callers save a table after it has been produced.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  sourcePath TEXT NOT NULL,
  checksum TEXT NOT NULL,
  rowCount INTEGER NOT NULL,
  total TEXT NOT NULL,
  firstDate TEXT,
  lastDate TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_checksum ON runs(checksum);

CREATE TABLE IF NOT EXISTS liquidations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  position INTEGER NOT NULL,
  lineNo INTEGER NOT NULL,
  data TEXT,
  fornecedor TEXT NOT NULL,
  fornecedorLimpo TEXT NOT NULL,
  valor TEXT NOT NULL,
  tipoLicitacao TEXT NOT NULL,
  empenho TEXT NOT NULL,
  UNIQUE(runId, position),
  FOREIGN KEY(runId) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// SaveRun stores a snapshot of the table in its current order.
func (d *DB) SaveRun(sourcePath, checksum string, rows []internal.Liquidation) (internal.RunRow, error) {
	run := internal.RunRow{
		ID:         uuid.NewString(),
		SourcePath: sourcePath,
		Checksum:   checksum,
		Rows:       len(rows),
	}
	for _, r := range rows {
		run.Total = run.Total.Add(r.Valor)
		if r.Data == nil {
			continue
		}
		if run.FirstDate == nil || r.Data.Before(*run.FirstDate) {
			run.FirstDate = r.Data
		}
		if run.LastDate == nil || r.Data.After(*run.LastDate) {
			run.LastDate = r.Data
		}
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return internal.RunRow{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
INSERT INTO runs (id, sourcePath, checksum, rowCount, total, firstDate, lastDate)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.SourcePath, run.Checksum, run.Rows, run.Total.String(), dateValue(run.FirstDate), dateValue(run.LastDate)); err != nil {
		return internal.RunRow{}, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO liquidations (runId, position, lineNo, data, fornecedor, fornecedorLimpo, valor, tipoLicitacao, empenho)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return internal.RunRow{}, err
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.Exec(
			run.ID, i, r.LineNo, dateValue(r.Data), r.Fornecedor, r.FornecedorLimpo,
			r.Valor.String(), r.TipoLicitacao, r.Empenho,
		); err != nil {
			return internal.RunRow{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return internal.RunRow{}, err
	}

	saved, err := d.GetRun(run.ID)
	if err != nil {
		return internal.RunRow{}, err
	}
	if saved == nil {
		return internal.RunRow{}, errors.New("failed to save run")
	}
	return *saved, nil
}

func (d *DB) GetRun(id string) (*internal.RunRow, error) {
	row := d.conn.QueryRow(`
SELECT id, sourcePath, checksum, rowCount, total, firstDate, lastDate, createdAt
FROM runs WHERE id = ?
`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(`
SELECT id, sourcePath, checksum, rowCount, total, firstDate, lastDate, createdAt
FROM runs ORDER BY createdAt DESC, rowid DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (d *DB) GetRunLiquidations(runID string) ([]internal.Liquidation, error) {
	rows, err := d.conn.Query(`
SELECT lineNo, data, fornecedor, fornecedorLimpo, valor, tipoLicitacao, empenho
FROM liquidations WHERE runId = ? ORDER BY position ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Liquidation
	for rows.Next() {
		var (
			l     internal.Liquidation
			data  sql.NullString
			valor string
		)
		if err := rows.Scan(&l.LineNo, &data, &l.Fornecedor, &l.FornecedorLimpo, &valor, &l.TipoLicitacao, &l.Empenho); err != nil {
			return nil, err
		}
		l.Data = parseDateValue(data)
		l.Valor, err = decimal.NewFromString(valor)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (internal.RunRow, error) {
	var (
		run         internal.RunRow
		total       string
		first, last sql.NullString
	)
	if err := s.Scan(&run.ID, &run.SourcePath, &run.Checksum, &run.Rows, &total, &first, &last, &run.CreatedAt); err != nil {
		return internal.RunRow{}, err
	}
	v, err := decimal.NewFromString(total)
	if err != nil {
		return internal.RunRow{}, err
	}
	run.Total = v
	run.FirstDate = parseDateValue(first)
	run.LastDate = parseDateValue(last)
	return run, nil
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(isoDate)
}

func parseDateValue(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(isoDate, v.String)
	if err != nil {
		return nil
	}
	return &t
}
