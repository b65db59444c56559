package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config armazena todas as configurações do front end GoRecipes.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// API de receitas (backend externo)
	APIBaseURL string

	// Sessão local (equivalente ao localStorage do navegador)
	SessionFile string

	// Cache (Redis). Endereço vazio desliga o cache e o rate limit.
	RedisAddr string
	CacheTTL  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Páginas
	NewestLimit int
	PageSize    int
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. API externa
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),

		// 3. Sessão
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),

		// 4. Cache (Redis)
		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  getDurationEnv("CACHE_TTL_SEC", 300) * time.Second, // 5 min padrão

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 6. Páginas
		NewestLimit: getIntEnv("NEWEST_LIMIT", 3),
		PageSize:    getIntEnv("PAGE_SIZE", 6),
	}

	return cfg
}

// defaultSessionFile aponta para ~/.config/gorecipes/session.json quando possível.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "gorecipes", "session.json")
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
