package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	DbDriver        string
	DbHost          string
	DbPort          string
	DbUser          string
	DbPassword      string
	DbName          string
	DbParams        string
	SqlitePath      string
	PostgresDSN     string
	RedisAddr       string
	RedisChannel    string
	NatsURL         string
	NatsSubject     string
	JWTSecret       string
	SweepWorkers    int
	ShutdownTimeout time.Duration
	TrustedProxies  []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		DbDriver:        getEnv("DB_DRIVER", "mysql"),
		DbHost:          getEnv("MYSQL_HOST", "db"),
		DbPort:          getEnv("MYSQL_PORT", "3306"),
		DbUser:          getEnv("MYSQL_USER", "housetasks"),
		DbPassword:      getEnv("MYSQL_PASSWORD", "housetasks"),
		DbName:          getEnv("MYSQL_DATABASE", "housetasks"),
		DbParams:        getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		SqlitePath:      getEnv("SQLITE_PATH", "housetasks.db"),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisChannel:    getEnv("REDIS_CHANNEL", "housetasks.transitions"),
		NatsURL:         getEnv("NATS_URL", ""),
		NatsSubject:     getEnv("NATS_SUBJECT", "housetasks.transitions"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		SweepWorkers:    getEnvInt("RECONCILE_WORKERS", 4),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		TrustedProxies:  parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
