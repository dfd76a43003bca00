package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ganfan/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.SessionCheckInterval = 0
	return &cfg
}

func TestNewFromConfig_RunsFirstLogin(t *testing.T) {
	noTerminal(t)
	cfg := testConfig(t)
	var out, logs bytes.Buffer

	in := strings.NewReader("Mom\n123456\nwhoami\nexit\n")
	app, closer, err := NewFromConfig(context.Background(), cfg, in, &out, &logs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })

	captureOutput(t)
	app.Run(context.Background())

	assert.Contains(t, out.String(), "Hello, Mom!")
	assert.Contains(t, out.String(), "Mom, chef, session valid until")
	assert.Contains(t, cfg.DatabaseDSN, "ganfan.db")
}

func TestNewFromConfig_BadSettings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Config)
	}{
		{"log level", func(c *config.Config) { c.LogLevel = "loud" }},
		{"log format", func(c *config.Config) { c.LogFormat = "xml" }},
		{"store type", func(c *config.Config) { c.StoreType = "mongo" }},
		{"postgres without dsn", func(c *config.Config) { c.StoreType = "postgres" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.modify(cfg)
			_, _, err := NewFromConfig(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}
