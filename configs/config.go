package configs

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/configs/loader"
)

type TelegramConfig struct {
	Token             string        `validate:"required"`
	ConnectionTimeout time.Duration `validate:"required"`
	WebhookURL        string
	Port              string
	HandlerTimeout    time.Duration
}

type SheetsConfig struct {
	SpreadsheetID string `validate:"required"`
	Range         string `validate:"required"`
	Credentials   string `validate:"required"`
}

type Config struct {
	TG     TelegramConfig
	Sheets SheetsConfig
	Hotels []string
	Env    string
}

var defaultHotels = []string{
	"Sans Hotel Cibanteng",
	"Bubulak Inn",
	"Nirmala Resort",
	"Pandu Raya Home",
	"D'Palma Guest House",
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", "dev", "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := &Config{
		TG: TelegramConfig{
			Token:             envs["TELEGRAM_TOKEN"],
			ConnectionTimeout: getEnvAsDuration(envs["TELEGRAM_CONNECTION_TIMEOUT"], 5*time.Second),
			WebhookURL:        envs["WEBHOOK_URL"],
			Port:              getEnvOrDefault(envs["PORT"], "8000"),
			HandlerTimeout:    getEnvAsDuration(envs["HANDLER_TIMEOUT"], 30*time.Second),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: envs["SPREADSHEET_ID"],
			Range:         getEnvOrDefault(envs["SHEETS_RANGE"], "Sheet1!A:G"),
			Credentials:   envs["GOOGLE_CREDENTIALS"],
		},
		Hotels: getEnvAsList(envs["HOTELS"], defaultHotels),
		Env:    *env,
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("%s: config validation failed: %+v", op, err)
	}

	return cfg
}

func validateConfig(cfg *Config) error {
	if cfg.TG.Token == "" {
		return fmt.Errorf("missing required TELEGRAM_TOKEN")
	}
	if cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("missing required SPREADSHEET_ID")
	}
	if cfg.Sheets.Credentials == "" {
		return fmt.Errorf("missing required GOOGLE_CREDENTIALS")
	}
	if len(cfg.Hotels) == 0 {
		return fmt.Errorf("hotel list must not be empty")
	}
	return nil
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvOrDefault(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsList(strValue string, defaultValue []string) []string {
	if strValue == "" {
		return defaultValue
	}
	parts := strings.Split(strValue, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
