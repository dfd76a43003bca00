package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ganfan/internal/flagx"
	"github.com/dmitrijs2005/ganfan/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Missing keys keep the value
// loaded before the file.
type JsonConfig struct {
	StoreType            *string         `json:"store_type"`
	DatabaseDSN          *string         `json:"database_dsn"`
	StateDSN             *string         `json:"state_dsn"`
	DataDir              *string         `json:"data_dir"`
	TokenSecret          *string         `json:"token_secret"`
	S3Bucket             *string         `json:"s3_bucket"`
	S3Region             *string         `json:"s3_region"`
	S3Endpoint           *string         `json:"s3_endpoint"`
	S3AccessKey          *string         `json:"s3_access_key"`
	S3SecretKey          *string         `json:"s3_secret_key"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval"`
	ImageMaxKiB          *int            `json:"image_max_kib"`
	LogLevel             *string         `json:"log_level"`
	LogFormat            *string         `json:"log_format"`
}

// parseJson overlays cfg with the file given by -c or -config. Without
// either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.StoreType, jc.StoreType)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.StateDSN, jc.StateDSN)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.TokenSecret, jc.TokenSecret)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.SessionCheckInterval != nil {
		cfg.SessionCheckInterval = jc.SessionCheckInterval.Duration
	}
	if jc.ImageMaxKiB != nil {
		cfg.ImageMaxKiB = *jc.ImageMaxKiB
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
