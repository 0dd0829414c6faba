package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// input
	INPUT_PATH       string
	DATE_COLUMN      string
	RULES_FILE       string
	COLLISION_POLICY string
	// export
	CSV_DELIMITER   string
	REPORT_TEMPLATE string
	// server
	APP_PORT     string
	DETAIL_LIMIT int
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
	LOG_REQUESTS  bool
}

// LoadEnvConfig reads .env (when present) and the process environment into DefaultEnvConfig.
func LoadEnvConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		INPUT_PATH:       getEnvString("INPUT_PATH", "data/pedidos.xlsx"),
		DATE_COLUMN:      getEnvString("DATE_COLUMN", "DATA DO PEDIDO"),
		RULES_FILE:       getEnvString("RULES_FILE", ""),
		COLLISION_POLICY: getEnvString("COLLISION_POLICY", "first"),
		CSV_DELIMITER:    getEnvString("CSV_DELIMITER", ";"),
		REPORT_TEMPLATE:  getEnvString("REPORT_TEMPLATE", ""),
		APP_PORT:         getEnvString("APP_PORT", "8080"),
		DETAIL_LIMIT:     getEnvInt("DETAIL_LIMIT", 500),
		LOG_FILE_PATH:    getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:        getEnvString("LOG_LEVEL", "info"),
		LOG_REQUESTS:     getEnvBool("LOG_REQUESTS", true),
	}
	return nil
}

// Delimiter returns the first rune of CSV_DELIMITER, ';' when unset.
func (c *envConfig) Delimiter() rune {
	for _, r := range c.CSV_DELIMITER {
		return r
	}
	return ';'
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
