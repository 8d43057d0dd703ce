package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8787, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 512, cfg.Cache.Size)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "valid range",
		},
		{
			name:    "negative port",
			mutate:  func(c *Config) { c.Server.Port = -1 },
			wantErr: "valid range",
		},
		{
			name:    "host with shell characters",
			mutate:  func(c *Config) { c.Server.Host = "host;rm" },
			wantErr: "invalid characters",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "unknown level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log format",
		},
		{
			name:    "zero cache size",
			mutate:  func(c *Config) { c.Cache.Size = 0 },
			wantErr: "cache size",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 9000
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
}

func TestWriteDefault(t *testing.T) {
	t.Run("writes yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".hydro.yml")
		require.NoError(t, WriteDefault(path))

		out, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(out), "server:")
		assert.Contains(t, string(out), "port: 8787")
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".hydro.yml")
		require.NoError(t, os.WriteFile(path, []byte("keep: me"), 0o644))

		err := WriteDefault(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}
