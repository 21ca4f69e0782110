package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/auslan")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 20, cfg.DB.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.DB.MaxConnLifetime)
	assert.Equal(t, "auslan", cfg.Redis.KeyPrefix)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CatalogTTL)
	assert.Equal(t, 10*time.Second, cfg.ContentAPI.Timeout)
	assert.Equal(t, "assets/data/catalog.json", cfg.Catalog.FallbackPath)
	assert.Equal(t, 10, cfg.Quiz.DefaultLength)
	assert.Equal(t, []int{5, 10, 15, 20}, cfg.Quiz.Lengths)
	assert.Equal(t, 10000, cfg.Progress.MaxCachedLearners)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/auslan", dsn)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/auslan")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoad_StorageDriverRequirements(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		dbURL   string
		redis   string
		wantErr error
	}{
		{"postgres without url", StoragePostgres, "", "", ErrMissingEnvironmentVariables},
		{"redis without url", StorageRedis, "", "", ErrMissingEnvironmentVariables},
		{"redis with url", StorageRedis, "", "redis://localhost:6379/0", nil},
		{"memory needs nothing", StorageMemory, "", "", nil},
		{"unknown driver", "sqlite", "", "", ErrUnknownStorageDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_API_TOKEN", "token")
			t.Setenv("STORAGE_DRIVER", tt.driver)
			t.Setenv("DATABASE_URL", tt.dbURL)
			t.Setenv("REDIS_URL", tt.redis)

			cfg, err := Load()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, cfg.Storage.Driver)
			assert.Equal(t, tt.redis, cfg.Redis.URL)
		})
	}
}

func TestDB_DSN_Empty(t *testing.T) {
	_, err := DB{}.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}
