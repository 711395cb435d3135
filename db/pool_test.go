package db

import (
	"context"
	"testing"
	"time"

	"github.com/NomadCrew/feedback-portal/config"
	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func TestPoolConfig(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:           "db.internal",
		Port:           5432,
		User:           "feedback",
		Password:       "s3cret",
		Name:           "feedback",
		SSLMode:        "require",
		MaxConnections: 7,
	}

	poolConfig, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(7), poolConfig.MaxConns)
	assert.Equal(t, "db.internal", poolConfig.ConnConfig.Host)
	assert.Equal(t, "feedback", poolConfig.ConnConfig.Database)
	require.NotNil(t, poolConfig.ConnConfig.TLSConfig)
	assert.Equal(t, "db.internal", poolConfig.ConnConfig.TLSConfig.ServerName)
	assert.Equal(t, 5*time.Second, poolConfig.ConnConfig.ConnectTimeout)
}

func TestRedisOptions(t *testing.T) {
	opts := RedisOptions(&config.RedisConfig{Address: "redis:6379", DB: 2, UseTLS: true})
	assert.Equal(t, "redis:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.NotNil(t, opts.TLSConfig)

	opts = RedisOptions(&config.RedisConfig{Address: "redis:6379"})
	assert.Nil(t, opts.TLSConfig)
}

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(context.Background(), &config.RedisConfig{Enabled: false})
	assert.NoError(t, err)
	assert.Nil(t, client)
}
