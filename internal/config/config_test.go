package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "ADMIN_USERNAME", "REDIS_HOST", "GIN_MODE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "mysql", cfg.DB.Driver)
	require.Equal(t, "admin", cfg.AdminUsername)
	require.Empty(t, cfg.Redis.Addr())
	require.False(t, cfg.IsRelease())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/tracker.db")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, "sqlite", cfg.DB.Driver)
	require.Equal(t, "/tmp/tracker.db", cfg.DB.Path)
	require.Equal(t, "cache:6379", cfg.Redis.Addr())
	require.True(t, cfg.IsRelease())
	require.True(t, cfg.LogPretty)
}
