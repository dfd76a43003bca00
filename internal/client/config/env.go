package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// test seam
var dotenvPath = ".env"

// parseEnv loads the optional .env file into the process environment and
// overlays cfg with GANFAN_* variables found through lookup.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	strs := map[string]*string{
		"GANFAN_STORE_TYPE":    &cfg.StoreType,
		"GANFAN_DATABASE_DSN":  &cfg.DatabaseDSN,
		"GANFAN_STATE_DSN":     &cfg.StateDSN,
		"GANFAN_DATA_DIR":      &cfg.DataDir,
		"GANFAN_TOKEN_SECRET":  &cfg.TokenSecret,
		"GANFAN_S3_BUCKET":     &cfg.S3Bucket,
		"GANFAN_S3_REGION":     &cfg.S3Region,
		"GANFAN_S3_ENDPOINT":   &cfg.S3Endpoint,
		"GANFAN_S3_ACCESS_KEY": &cfg.S3AccessKey,
		"GANFAN_S3_SECRET_KEY": &cfg.S3SecretKey,
		"GANFAN_LOG_LEVEL":     &cfg.LogLevel,
		"GANFAN_LOG_FORMAT":    &cfg.LogFormat,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("GANFAN_SESSION_CHECK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GANFAN_SESSION_CHECK_INTERVAL: %w", err)
		}
		cfg.SessionCheckInterval = d
	}
	if v, ok := lookup("GANFAN_IMAGE_MAX_KIB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GANFAN_IMAGE_MAX_KIB: %w", err)
		}
		cfg.ImageMaxKiB = n
	}
	return nil
}
