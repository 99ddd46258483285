package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.RBAC.APIPrefix)
	assert.Equal(t, "memory", cfg.Blacklist.Driver)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "0 11 * * *", cfg.Scheduler.RoomStatusCron)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.JobTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("API_PREFIX", "v2")
	t.Setenv("BLACKLIST_DRIVER", "REDIS")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("SCHEDULER_JOB_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/v2", cfg.RBAC.APIPrefix)
	assert.Equal(t, "redis", cfg.Blacklist.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.JobTimeout)
}

func TestLoad_SinSecreto(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("BLACKLIST_DRIVER", "memcached")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pms", Password: "p@ss", DBName: "hotel", SSLMode: "disable"}
	assert.Equal(t, "postgres://pms:p%40ss@db:5432/hotel?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
