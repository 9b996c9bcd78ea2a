package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"fiscal/internal"
	"fiscal/internal/config"
	"fiscal/internal/logger"
	"fiscal/internal/pipeline"
	"fiscal/internal/report"
	"fiscal/internal/storage"
	"fiscal/internal/util"
	"fiscal/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	input := fs.String("input", cfg.InputPath, "liquidações CSV export")
	verbose := fs.Bool("verbose", cfg.Verbose, "print diagnostics")

	switch cmd {
	case "process":
		limit := fs.Int("head", 5, "rows to preview")
		_ = fs.Parse(os.Args[2:])
		cfg.Verbose = *verbose
		loc := pipeline.OptionsFromConfig(cfg).Locale

		fmt.Println("Processando arquivo de liquidações pagas...")
		table := load(ctx, cfg, *input)
		if table == nil {
			fmt.Println("Falha no processamento dos dados")
			report.WriteTable(os.Stdout, nil, loc, 0)
			os.Exit(1)
		}
		fmt.Printf("\nPRIMEIRAS %d LIQUIDAÇÕES:\n", *limit)
		report.WriteTable(os.Stdout, table, loc, *limit)
		report.WriteSummary(os.Stdout, table, loc, cfg.ReportTopN)
		fmt.Println("\nTODOS OS DADOS PROCESSADOS:")
		report.WriteTable(os.Stdout, table, loc, 0)
		report.WriteStats(os.Stdout, report.Summarize(table.Rows), loc)
	case "report":
		top := fs.Int("top", cfg.ReportTopN, "suppliers in ranking")
		_ = fs.Parse(os.Args[2:])
		cfg.Verbose = *verbose
		loc := pipeline.OptionsFromConfig(cfg).Locale

		table := load(ctx, cfg, *input)
		if table == nil {
			table = internal.NewTable(nil)
		}
		report.WriteMetrics(os.Stdout, report.Metrics(report.Summarize(table.Rows), loc))
		report.WriteSummary(os.Stdout, table, loc, *top)
	case "export:xlsx":
		out := fs.String("out", filepath.Join(cfg.OutputDir, "liquidacoes.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		cfg.Verbose = *verbose
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		table := load(ctx, cfg, *input)
		if table == nil {
			table = internal.NewTable(nil)
		}
		must(pipeline.ExportTableToXLSX(table, *out, cfg.ReportTopN, pipeline.OptionsFromConfig(cfg).Locale))
		fmt.Printf("exported %d rows to %s\n", table.Len(), *out)
	case "runs:save":
		_ = fs.Parse(os.Args[2:])
		cfg.Verbose = *verbose
		must(cfg.Require("--input", *input))
		processor := pipeline.NewProcessor(pipeline.OptionsFromConfig(cfg), logger.New(cfg))
		res, err := processor.Process(ctx, *input)
		must(err)
		checksum, err := util.FileChecksum(*input)
		must(err)
		db := openDB(cfg)
		defer db.Close()
		run, err := db.SaveRun(*input, checksum, res.Table.Rows)
		must(err)
		fmt.Printf("saved run id=%s rows=%d total=%s\n", run.ID, run.Rows, util.FormatCurrency(run.Total, pipeline.OptionsFromConfig(cfg).Locale))
	case "runs:list":
		limit := fs.Int("limit", 20, "max runs")
		_ = fs.Parse(os.Args[2:])
		db := openDB(cfg)
		defer db.Close()
		runs, err := db.ListRuns(*limit)
		must(err)
		loc := pipeline.OptionsFromConfig(cfg).Locale
		for _, r := range runs {
			fmt.Printf("%s  %s  rows=%d  total=%s  period=%s..%s  %s\n",
				r.CreatedAt, r.ID, r.Rows, util.FormatCurrency(r.Total, loc),
				util.FormatDate(r.FirstDate), util.FormatDate(r.LastDate), r.SourcePath)
		}
	case "watch":
		out := fs.String("out", filepath.Join(cfg.OutputDir, "liquidacoes.xlsx"), "output xlsx path")
		record := fs.Bool("record", false, "save every cycle in the run history")
		_ = fs.Parse(os.Args[2:])
		cfg.Verbose = *verbose
		var db *storage.DB
		if *record {
			db = openDB(cfg)
			defer db.Close()
		}
		svc := watcher.NewService(cfg, db, logger.New(cfg), *input, *out)
		must(svc.Run(ctx))
	default:
		usage()
		os.Exit(1)
	}
}

func load(ctx context.Context, cfg config.Config, input string) *internal.Table {
	processor := pipeline.NewProcessor(pipeline.OptionsFromConfig(cfg), logger.New(cfg))
	return processor.Load(ctx, input)
}

func openDB(cfg config.Config) *storage.DB {
	db, err := storage.Open(cfg.DBPath)
	must(err)
	return db
}

func usage() {
	fmt.Println("usage: fiscal <command>")
	fmt.Println("commands:")
	fmt.Println("  process --input=liquidacoes.csv [--head=5] [--verbose]")
	fmt.Println("  report --input=liquidacoes.csv [--top=10]")
	fmt.Println("  export:xlsx --input=liquidacoes.csv --out=./out/liquidacoes.xlsx")
	fmt.Println("  runs:save --input=liquidacoes.csv")
	fmt.Println("  runs:list [--limit=20]")
	fmt.Println("  watch --input=liquidacoes.csv --out=./out/liquidacoes.xlsx [--record]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
