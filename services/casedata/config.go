package casedata

import (
	"os"
	"time"

	"ecourts-backend/lib/configutil"
	"ecourts-backend/lib/scrapers/ecourts"
)

type Config struct {
	BaseUrl              string `json:"base_url"`
	TimeoutSeconds       int    `json:"timeout_seconds"`
	RetryCount           int    `json:"retry_count"`
	MinRequestIntervalMs int    `json:"min_request_interval_ms"`
	DatabasePath         string `json:"database_path"`
	OutputDir            string `json:"output_dir"`
	Demo                 bool   `json:"demo"`
}

const defaultBaseUrl = "https://services.ecourts.gov.in/ecourtindia_v6/"

// LoadConfig reads <name>.json5 (plus its .local override) when
// present, fills defaults, and applies ECOURTS_* environment
// overrides. Environment is read once here, at process start.
func LoadConfig(name string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](name)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}

	if cfg.BaseUrl == "" {
		cfg.BaseUrl = defaultBaseUrl
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 30
	}
	if cfg.RetryCount == 0 {
		cfg.RetryCount = 3
	}
	if cfg.MinRequestIntervalMs == 0 {
		cfg.MinRequestIntervalMs = 1000
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	configutil.EnvString(&cfg.BaseUrl, "ECOURTS_BASE_URL")
	configutil.EnvInt(&cfg.TimeoutSeconds, "ECOURTS_TIMEOUT_SECONDS")
	configutil.EnvInt(&cfg.RetryCount, "ECOURTS_RETRY_COUNT")
	configutil.EnvInt(&cfg.MinRequestIntervalMs, "ECOURTS_MIN_REQUEST_INTERVAL_MS")
	configutil.EnvString(&cfg.DatabasePath, "ECOURTS_DATABASE_PATH")
	configutil.EnvString(&cfg.OutputDir, "ECOURTS_OUTPUT_DIR")
	configutil.EnvBool(&cfg.Demo, "ECOURTS_DEMO")

	return cfg, nil
}

func (c Config) ClientOptions() ecourts.ClientOptions {
	return ecourts.ClientOptions{
		BaseUrl:            c.BaseUrl,
		Timeout:            time.Duration(c.TimeoutSeconds) * time.Second,
		RetryCount:         c.RetryCount,
		MinRequestInterval: time.Duration(c.MinRequestIntervalMs) * time.Millisecond,
	}
}
