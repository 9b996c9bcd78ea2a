package watcher

import (
	"context"
	"time"

	charmlog "github.com/charmbracelet/log"

	"fiscal/internal"
	"fiscal/internal/config"
	"fiscal/internal/pipeline"
	"fiscal/internal/storage"
	"fiscal/internal/util"
)

const lastExportKey = "watch.last_export"

// RunStore records processed runs. *storage.DB implements it.
type RunStore interface {
	SaveRun(sourcePath, checksum string, rows []internal.Liquidation) (internal.RunRow, error)
	SetMetadata(key, value string) error
}

// Service re-reads the export on every cycle and rewrites the workbook.
// Nothing is cached between cycles.
type Service struct {
	cfg        config.Config
	db         RunStore
	log        *charmlog.Logger
	processor  *pipeline.Processor
	inputPath  string
	outputPath string
}

type CycleResult struct {
	Rows    int
	Saved   bool
	Failed  bool
	Elapsed time.Duration
}

// NewService builds a watcher. db may be nil, in which case runs are not
// recorded.
func NewService(cfg config.Config, db *storage.DB, log *charmlog.Logger, inputPath, outputPath string) *Service {
	s := newService(cfg, nil, log, inputPath, outputPath)
	if db != nil {
		s.db = db
	}
	return s
}

func newService(cfg config.Config, store RunStore, log *charmlog.Logger, inputPath, outputPath string) *Service {
	return &Service{
		cfg:        cfg,
		db:         store,
		log:        log,
		processor:  pipeline.NewProcessor(pipeline.OptionsFromConfig(cfg), log),
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.WatchIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	for {
		if _, err := s.RunCycle(ctx); err != nil {
			s.log.Error("watch cycle error", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

// RunCycle processes the input once. A file that cannot be processed still
// produces a workbook with only the header row.
func (s *Service) RunCycle(ctx context.Context) (CycleResult, error) {
	start := time.Now()
	res, err := s.processor.Process(ctx, s.inputPath)
	table := res.Table
	failed := err != nil
	if failed {
		s.log.Warn("input not processed, exporting empty table", "path", s.inputPath, "err", err)
		table = internal.NewTable(nil)
	}

	loc := pipeline.OptionsFromConfig(s.cfg).Locale
	if err := pipeline.ExportTableToXLSX(table, s.outputPath, s.cfg.ReportTopN, loc); err != nil {
		return CycleResult{Failed: failed}, err
	}

	out := CycleResult{Rows: table.Len(), Failed: failed}
	if s.db != nil && !failed {
		checksum, err := util.FileChecksum(s.inputPath)
		if err != nil {
			return out, err
		}
		if _, err := s.db.SaveRun(s.inputPath, checksum, table.Rows); err != nil {
			return out, err
		}
		if err := s.db.SetMetadata(lastExportKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
			s.log.Warn("last export not recorded", "key", lastExportKey, "err", err)
		}
		out.Saved = true
	}
	out.Elapsed = time.Since(start)

	s.log.Info("watch cycle done", "rows", out.Rows, "output", s.outputPath, "saved", out.Saved, "elapsed", out.Elapsed)
	return out, nil
}
