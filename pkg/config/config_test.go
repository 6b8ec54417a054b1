package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	os.Setenv("SERVER_PORT", "8080")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("JWT_SECRET", "test-secret")

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Assertions
	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)

	// Cleanup
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_USER")
	os.Unsetenv("DB_PASSWORD")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("REDIS_HOST")
	os.Unsetenv("REDIS_PORT")
	os.Unsetenv("JWT_SECRET")
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Clear environment variables
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("FANOUT_CONCURRENCY")
	os.Unsetenv("FANOUT_WRITE_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "myshop", cfg.DBName)
	assert.Equal(t, 20, cfg.FanoutConcurrency)
	assert.Equal(t, 8*time.Second, cfg.FanoutWriteTimeout)
}

func TestLoadConfig_FanoutOverrides(t *testing.T) {
	os.Setenv("FANOUT_CONCURRENCY", "5")
	os.Setenv("FANOUT_WRITE_TIMEOUT", "2s")
	defer os.Unsetenv("FANOUT_CONCURRENCY")
	defer os.Unsetenv("FANOUT_WRITE_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, 5, cfg.FanoutConcurrency)
	assert.Equal(t, 2*time.Second, cfg.FanoutWriteTimeout)
}

func TestLoadConfig_InvalidFanoutValues(t *testing.T) {
	os.Setenv("FANOUT_CONCURRENCY", "not-a-number")
	os.Setenv("FANOUT_WRITE_TIMEOUT", "-3s")
	defer os.Unsetenv("FANOUT_CONCURRENCY")
	defer os.Unsetenv("FANOUT_WRITE_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Invalid values fall back to defaults
	assert.Equal(t, 20, cfg.FanoutConcurrency)
	assert.Equal(t, 8*time.Second, cfg.FanoutWriteTimeout)
}
