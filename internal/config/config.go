package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const defaultStorageFile = "tasks.json"

type Config struct {
	StorageFile string `toml:"storage_file"`
	DatabaseURL string `toml:"database_url"`
	Debug       bool   `toml:"debug"`
}

// Load собирает конфигурацию: значения по умолчанию, потом
// toml-файл (.tasks.toml или TASKS_CONFIG), потом переменные окружения
func Load() (Config, error) {
	cfg := Config{
		StorageFile: defaultStorageFile,
	}

	path := os.Getenv("TASKS_CONFIG")
	if path == "" {
		path = ".tasks.toml"
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg.StorageFile = getEnv("TASKS_FILE", cfg.StorageFile)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	if os.Getenv("TASKS_DEBUG") != "" {
		cfg.Debug = true
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
