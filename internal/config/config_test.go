package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noConfigFile(t *testing.T) string {
	return "-c=" + filepath.Join(t.TempDir(), "absent.json")
}

func TestLoad_Defaults(t *testing.T) {
	o, err := Load([]string{noConfigFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", o.Address)
	assert.Equal(t, "data", o.DataDir)
	assert.Equal(t, "users.yml", o.UsersFile)
	assert.Empty(t, o.DatabaseDSN)
	assert.Empty(t, o.RedisURL)
	assert.Equal(t, 10, o.BcryptCost)
	assert.Equal(t, 24*time.Hour, o.SessionTTL.Duration)
	assert.Equal(t, "docstore_session", o.SessionCookie)
	assert.Equal(t, "info", o.LogLevel)
}

func TestLoad_Flags(t *testing.T) {
	o, err := Load([]string{noConfigFile(t), "-a", ":9000", "-data", "/srv/docs", "-session-ttl", "90m"})
	require.NoError(t, err)

	assert.Equal(t, ":9000", o.Address)
	assert.Equal(t, "/srv/docs", o.DataDir)
	assert.Equal(t, 90*time.Minute, o.SessionTTL.Duration)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"address": ":7000", "data_dir": "from-file", "session_ttl": "2h", "bcrypt_cost": 12}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CONFIG", path)
	t.Setenv("DATA_DIR", "from-env")

	o, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":7000", o.Address)
	assert.Equal(t, "from-env", o.DataDir)
	assert.Equal(t, 2*time.Hour, o.SessionTTL.Duration)
	assert.Equal(t, 12, o.BcryptCost)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8181")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost/db")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("USERS_FILE", "/etc/docstore/users.yml")

	o, err := Load([]string{noConfigFile(t)})
	require.NoError(t, err)

	assert.Equal(t, ":8181", o.Address)
	assert.Equal(t, "redis://localhost:6379/0", o.RedisURL)
	assert.Equal(t, "postgres://u:p@localhost/db", o.DatabaseDSN)
	assert.Equal(t, 4, o.BcryptCost)
	assert.Equal(t, 15*time.Minute, o.SessionTTL.Duration)
	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "/etc/docstore/users.yml", o.UsersFile)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad env cost", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "high")
		_, err := Load([]string{noConfigFile(t)})
		assert.Error(t, err)
	})

	t.Run("bad config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := Load([]string{"-c", path})
		assert.Error(t, err)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := Load([]string{"-nope"})
		assert.Error(t, err)
	})
}
