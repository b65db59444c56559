package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gorecipes/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	cfg := config.LoadConfig()

	// Variável definida mas vazia é respeitada (LookupEnv)
	assert.Equal(t, "", cfg.APIBaseURL)
	assert.Equal(t, 6, cfg.PageSize)
	assert.Equal(t, 3, cfg.NewestLimit)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.test/api")
	t.Setenv("CACHE_TTL_SEC", "30")
	t.Setenv("PAGE_SIZE", "abc")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := config.LoadConfig()

	assert.Equal(t, "http://api.test/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 6, cfg.PageSize, "valor inválido deve cair no padrão")
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}
