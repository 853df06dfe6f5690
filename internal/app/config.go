package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fintrace/fintrace-backend/internal/platform/envutil"
	"github.com/fintrace/fintrace-backend/internal/platform/logger"
)

type Config struct {
	Addr        string `yaml:"addr"`
	LogMode     string `yaml:"log_mode"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	Journal     bool   `yaml:"journal"`
}

func defaultConfig() Config {
	return Config{
		Addr:        ":8080",
		LogMode:     "development",
		Environment: "local",
		Version:     "dev",
		Journal:     true,
	}
}

// LoadConfig starts from defaults, merges the optional YAML file named by
// FINTRACE_CONFIG, then lets individual environment variables win.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()

	if path := envutil.String("FINTRACE_CONFIG", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("config file loaded", "path", path)
	}

	cfg.Addr = envutil.String("HTTP_ADDR", cfg.Addr)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.Environment = envutil.String("ENVIRONMENT", cfg.Environment)
	cfg.Version = envutil.String("VERSION", cfg.Version)
	cfg.Journal = envutil.Bool("LEDGER_JOURNAL", cfg.Journal)
	return cfg, nil
}
