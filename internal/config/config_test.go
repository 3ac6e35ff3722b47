package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"DB_QUERY_TIMEOUT", "DB_EXECUTE_TIMEOUT", "PAGE_CACHE_TTL", "SERVER_ADDR", "PROFILE_STORE", "PROFILE_STORE_PATH"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, defaultQueryTimeout, cfg.GetDBQueryTimeout())
	assert.Equal(t, defaultExecuteTimeout, cfg.GetDBExecuteTimeout())
	assert.Equal(t, defaultPageCacheTTL, cfg.GetPageCacheTTL())
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, StoreSurreal, cfg.GetProfileStore())
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SURREAL_URL", "ws://db:8000")
	t.Setenv("SURREAL_NS", "app")
	t.Setenv("SURREAL_DB", "main")
	t.Setenv("DB_QUERY_TIMEOUT", "2s")
	t.Setenv("PAGE_CACHE_TTL", "30s")
	t.Setenv("PROFILE_STORE", StoreFile)
	t.Setenv("PROFILE_STORE_PATH", "/tmp/profiles.json")

	cfg := FromEnv()

	assert.Equal(t, "ws://db:8000", cfg.GetDBURL())
	assert.Equal(t, "app", cfg.GetDBNs())
	assert.Equal(t, "main", cfg.GetDBDb())
	assert.Equal(t, 2*time.Second, cfg.GetDBQueryTimeout())
	assert.Equal(t, 30*time.Second, cfg.GetPageCacheTTL())
	assert.Equal(t, StoreFile, cfg.GetProfileStore())
	assert.Equal(t, "/tmp/profiles.json", cfg.GetProfileStorePath())
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_MalformedDurationFallsBack(t *testing.T) {
	t.Setenv("DB_EXECUTE_TIMEOUT", "ten seconds")

	cfg := FromEnv()

	assert.Equal(t, defaultExecuteTimeout, cfg.GetDBExecuteTimeout())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBQueryTimeout:   time.Second,
			DBExecuteTimeout: time.Second,
			PageCacheTTL:     time.Minute,
			ProfileStore:     StoreSurreal,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid surreal", mutate: func(c *Config) {}},
		{name: "zero query timeout", mutate: func(c *Config) { c.DBQueryTimeout = 0 }, wantErr: "DB_QUERY_TIMEOUT"},
		{name: "negative execute timeout", mutate: func(c *Config) { c.DBExecuteTimeout = -time.Second }, wantErr: "DB_EXECUTE_TIMEOUT"},
		{name: "zero cache ttl", mutate: func(c *Config) { c.PageCacheTTL = 0 }, wantErr: "PAGE_CACHE_TTL"},
		{name: "unknown store", mutate: func(c *Config) { c.ProfileStore = "postgres" }, wantErr: "unknown PROFILE_STORE"},
		{name: "file store without path", mutate: func(c *Config) { c.ProfileStore = StoreFile }, wantErr: "PROFILE_STORE_PATH"},
		{name: "file store with path", mutate: func(c *Config) {
			c.ProfileStore = StoreFile
			c.ProfileStorePath = "profiles.json"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
