package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/filex"
)

// Config holds runtime settings for the ganfan terminal.
type Config struct {
	// StoreType is "sqlite" or "postgres".
	StoreType string
	// DatabaseDSN is the data store DSN. Empty means a SQLite file in DataDir.
	DatabaseDSN string
	// StateDSN is the local SQLite file keeping the session slot when the
	// data store is postgres. Empty means a file in DataDir.
	StateDSN string
	DataDir  string

	// TokenSecret switches sessions to signed tokens when set.
	TokenSecret string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	SessionCheckInterval time.Duration
	ImageMaxKiB          int

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with settings for a single-machine household.
func (c *Config) LoadDefaults() {
	c.StoreType = "sqlite"
	c.DataDir = "ganfan-data"
	c.S3Region = "us-east-1"
	c.SessionCheckInterval = 30 * time.Second
	c.ImageMaxKiB = 256
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment and finally the flags in args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments. It panics on a bad source.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}

// ResolveStore fills empty DSNs with SQLite files under DataDir, creating
// the directory when needed.
func (c *Config) ResolveStore() error {
	if c.DatabaseDSN == "" {
		if c.StoreType != "sqlite" {
			return fmt.Errorf("database dsn is required for store type %q", c.StoreType)
		}
		dsn, err := filex.SQLiteDSN(c.DataDir, "ganfan.db")
		if err != nil {
			return err
		}
		c.DatabaseDSN = dsn
	}
	if c.StateDSN == "" && c.StoreType != "sqlite" {
		dsn, err := filex.SQLiteDSN(c.DataDir, "state.db")
		if err != nil {
			return err
		}
		c.StateDSN = dsn
	}
	return nil
}

// ImageMaxBytes is the photo budget in bytes.
func (c *Config) ImageMaxBytes() int {
	return c.ImageMaxKiB * 1024
}
