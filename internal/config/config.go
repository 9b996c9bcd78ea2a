package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	InputPath string
	DBPath    string
	OutputDir string

	SkipRows int
	Verbose  bool

	LogLevel string
	LogJSON  bool

	ReportTopN       int
	WatchIntervalSec int
	CurrencySymbol   string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InputPath: getEnv("FISCAL_INPUT", filepath.Join(cwd, "data", "liquidacoes_pagas.csv")),
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "fiscal.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		SkipRows: getEnvInt("FISCAL_SKIP_ROWS", 3),
		Verbose:  getEnvBool("FISCAL_VERBOSE", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("LOG_JSON", false),

		ReportTopN:       getEnvInt("REPORT_TOP_N", 10),
		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 60),
		CurrencySymbol:   getEnv("CURRENCY_SYMBOL", "R$"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required setting: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
