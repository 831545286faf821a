package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/skillmatch/pkg/api"
)

type config struct {
	Addr                string        `yaml:"addr"`
	TaxonomyDir         string        `yaml:"taxonomy_dir"`
	MaxUploadBytes      int64         `yaml:"max_upload_bytes"`
	SourcesDB           string        `yaml:"sources_db"`
	SourceCheckInterval time.Duration `yaml:"source_check_interval"`
}

func defaultConfig() config {
	return config{
		Addr:           ":8420",
		MaxUploadBytes: api.DefaultMaxUploadBytes,
		SourcesDB:      "sources.db",
	}
}

// loadConfig reads the YAML file at path (missing file means defaults), then
// applies SKILLMATCH_* overrides from the environment and .env.
func loadConfig(path string) (config, bool, error) {
	cfg := defaultConfig()
	found := true

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		found = false
	case err != nil:
		return cfg, false, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, true, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return cfg, found, err
	}
	return cfg, found, nil
}

func applyEnv(cfg *config, getenv func(string) string) error {
	if v := getenv("SKILLMATCH_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("SKILLMATCH_TAXONOMY_DIR"); v != "" {
		cfg.TaxonomyDir = v
	}
	if v := getenv("SKILLMATCH_SOURCES_DB"); v != "" {
		cfg.SourcesDB = v
	}
	if v := getenv("SKILLMATCH_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("SKILLMATCH_MAX_UPLOAD_BYTES: invalid size %q", v)
		}
		cfg.MaxUploadBytes = n
	}
	if v := getenv("SKILLMATCH_SOURCE_CHECK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SKILLMATCH_SOURCE_CHECK_INTERVAL: %w", err)
		}
		cfg.SourceCheckInterval = d
	}
	return nil
}
