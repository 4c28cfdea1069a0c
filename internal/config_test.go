package internal

import (
	"testing"

	env "github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("BLUGE_FILEPATH", t.TempDir())

	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	req.NoError(err)
	req.NoError(cfg.Validate())

	req.Equal("localhost:8080", cfg.HTTPAddr())
	req.Equal("localhost:9090", cfg.GrpcAddr())
	req.Equal("INFO", cfg.LogLevel)
	req.False(cfg.AuthEnabled)
	req.Equal("TestUser", cfg.FallbackOwnerID)

	limits := cfg.Limits()
	req.Equal(30, limits.RetentionWindow)
	req.Equal(30, limits.OwnerLimit)
	req.Equal("100m", limits.RadiusDistance)
	req.Equal(20, limits.RadiusLimit)
}

func TestConfig_Validate(t *testing.T) {
	base := Config{RetentionWindow: 30, OwnerLimit: 30, RadiusLimit: 20, RadiusDistance: "100m"}
	tests := []struct {
		description string
		modify      func(c *Config)
		wantErr     bool
	}{
		{"Should accept the defaults", func(c *Config) {}, false},
		{"Should reject a zero retention window", func(c *Config) { c.RetentionWindow = 0 }, true},
		{"Should reject a negative owner limit", func(c *Config) { c.OwnerLimit = -1 }, true},
		{"Should reject a zero radius limit", func(c *Config) { c.RadiusLimit = 0 }, true},
		{"Should reject an empty radius", func(c *Config) { c.RadiusDistance = "" }, true},
		{"Should require a key with auth", func(c *Config) { c.AuthEnabled = true }, true},
		{"Should accept auth with a key", func(c *Config) { c.AuthEnabled = true; c.JWTSigningKey = "k" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			cfg := base
			tt.modify(&cfg)
			if tt.wantErr {
				require.Error(t, cfg.Validate())
				return
			}
			require.NoError(t, cfg.Validate())
		})
	}
}
