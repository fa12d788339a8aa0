package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_MemoryStore(t *testing.T) {
	cfg := &Config{}
	cfg.Store.Driver = StoreDriverMemory

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, HashAlgorithmBcrypt, cfg.Auth.HashAlgorithm)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, defaultSessionCookieName, cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Hour, cfg.Session.CleanupInterval)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Auth:    &AuthConfig{HashAlgorithm: HashAlgorithmArgon2id, BcryptCost: 10},
		Session: &SessionConfig{CookieName: "sid", TTL: time.Minute, CleanupInterval: time.Second},
	}
	cfg.Store.Driver = StoreDriverMemory
	cfg.HTTP.MaxRequestBodySize = "1MB"

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, "1MB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, HashAlgorithmArgon2id, cfg.Auth.HashAlgorithm)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, time.Minute, cfg.Session.TTL)
	assert.Equal(t, time.Second, cfg.Session.CleanupInterval)
}

func TestApplyDefaults_PostgresDriverRequiresPostgresSection(t *testing.T) {
	cfg := &Config{}

	err := cfg.applyDefaults()

	require.Error(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
}

func TestApplyDefaults_UnknownDriver(t *testing.T) {
	cfg := &Config{}
	cfg.Store.Driver = "mongo"

	err := cfg.applyDefaults()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestBuildReplicasFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-0")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5433")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")
	t.Setenv("POSTGRES_REPLICAS_1_HOST", "replica-1")

	replicas := buildReplicasFromEnv()

	require.Len(t, replicas, 1)
	assert.Equal(t, ConnectionConfig{Host: "replica-0", Port: "5433", UserName: "reader"}, replicas[0])
}
