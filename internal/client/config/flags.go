package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/flagx"
)

// parseFlags overlays cfg with the flags listed in the package doc. Other
// arguments are left for other components.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("ganfan", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreType, "t", cfg.StoreType, "store type: sqlite or postgres")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "data store DSN")
	fs.StringVar(&cfg.StateDSN, "l", cfg.StateDSN, "local state DSN")
	fs.StringVar(&cfg.DataDir, "w", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.TokenSecret, "k", cfg.TokenSecret, "token signing secret")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for dish photos")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "S3 endpoint")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	interval := fs.Int("i", int(cfg.SessionCheckInterval.Seconds()), "session check interval (in seconds)")
	fs.IntVar(&cfg.ImageMaxKiB, "m", cfg.ImageMaxKiB, "photo size budget (in KiB)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text or json")

	if err := flagx.ParseKnown(fs, args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.SessionCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
