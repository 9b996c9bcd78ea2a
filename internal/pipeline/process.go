package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"fiscal/internal"
	"fiscal/internal/config"
	"fiscal/internal/util"
)

type Options struct {
	SkipRows int
	Verbose  bool
	Locale   util.Locale
}

func OptionsFromConfig(cfg config.Config) Options {
	loc := util.LocaleBR
	if cfg.CurrencySymbol != "" {
		loc.Symbol = cfg.CurrencySymbol
	}
	return Options{SkipRows: cfg.SkipRows, Verbose: cfg.Verbose, Locale: loc}
}

type Result struct {
	Path        string
	Columns     ColumnMap
	Table       *internal.Table
	Stats       Stats
	Diagnostics []Diagnostic
	Elapsed     time.Duration
}

// ProcessReader runs the whole normalization over one export.
func ProcessReader(ctx context.Context, r io.Reader, opts Options) (Result, error) {
	start := time.Now()
	raw, err := extractRaw(r, opts.SkipRows)
	if err != nil {
		return Result{}, &FileReadError{Err: err}
	}

	cols, err := DiscoverColumns(raw.Headers)
	if err != nil {
		return Result{Columns: cols}, err
	}

	rows, stats, diags, err := normalizeRecords(ctx, raw, cols)
	if err != nil {
		return Result{Columns: cols}, err
	}
	SortByDateDesc(rows)

	res := Result{
		Columns:     cols,
		Table:       internal.NewTable(rows),
		Stats:       stats,
		Diagnostics: diags,
		Elapsed:     time.Since(start),
	}
	if len(rows) == 0 {
		return res, ErrNoData
	}
	return res, nil
}

type Processor struct {
	opts Options
	log  *charmlog.Logger
}

func NewProcessor(opts Options, log *charmlog.Logger) *Processor {
	return &Processor{opts: opts, log: log}
}

func (p *Processor) Process(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{Path: path}, &FileReadError{Path: path, Err: err}
	}
	defer f.Close()

	res, err := ProcessReader(ctx, f, p.opts)
	res.Path = path
	var fre *FileReadError
	if errors.As(err, &fre) && fre.Path == "" {
		fre.Path = path
	}
	return res, err
}

// Load returns the normalized table or nil when anything went wrong. The
// reason is only logged in verbose mode.
func (p *Processor) Load(ctx context.Context, path string) *internal.Table {
	res, err := p.Process(ctx, path)
	if err != nil {
		p.verbose("failed to process file", "path", path, "err", err)
		return nil
	}
	p.report(res)
	return res.Table
}

func (p *Processor) report(res Result) {
	if !p.opts.Verbose || p.log == nil {
		return
	}
	headers := make([]string, 0, len(res.Columns.Columns))
	for _, c := range res.Columns.Columns {
		headers = append(headers, c.Header)
	}
	p.log.Info("columns found", "columns", headers)
	for _, d := range res.Diagnostics {
		p.log.Debug("row issue", "line", d.LineNo, "field", d.Field, "value", d.Value, "msg", d.Message)
	}

	loc := p.opts.Locale
	if loc.Symbol == "" {
		loc = util.LocaleBR
	}
	total := decimal.Zero
	var first, last *time.Time
	for _, row := range res.Table.Rows {
		total = total.Add(row.Valor)
		if row.Data == nil {
			continue
		}
		if first == nil || row.Data.Before(*first) {
			first = row.Data
		}
		if last == nil || row.Data.After(*last) {
			last = row.Data
		}
	}
	p.log.Info("file processed",
		"path", res.Path,
		"records", res.Stats.Kept,
		"dropped", res.Stats.DroppedBlank,
		"invalid_value", res.Stats.InvalidValue,
		"null_dates", res.Stats.NullDates,
		"total", util.FormatCurrency(total, loc),
		"period", util.FormatDate(first)+" a "+util.FormatDate(last),
		"elapsed", res.Elapsed,
	)
}

func (p *Processor) verbose(msg string, keyvals ...any) {
	if !p.opts.Verbose || p.log == nil {
		return
	}
	p.log.Error(msg, keyvals...)
}
