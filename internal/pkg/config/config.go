package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	Search   SearchConfig
	CORS     CORSConfig
	Logger   LoggerConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Enabled          bool
	Host             string
	Port             string
	Password         string
	DB               int
	LocationCacheTTL time.Duration
}

// JWTConfig содержит настройки JWT аутентификации
type JWTConfig struct {
	SecretKey    string
	AccessExpiry time.Duration
	Issuer       string
}

// KafkaConfig содержит настройки публикации событий о бронях
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	OrdersTopic string
}

// SearchConfig содержит ограничения пагинации поиска
type SearchConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// LoggerConfig содержит настройки логирования
type LoggerConfig struct {
	Level  string
	Format string // json или console
	Output string // stdout или путь к файлу
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "carrental_user"),
			Password:        getEnv("DB_PASSWORD", "carrental_password"),
			Database:        getEnv("DB_NAME", "carrental_db"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			AutoMigrate:     getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Enabled:          getBoolEnv("REDIS_ENABLED", true),
			Host:             getEnv("REDIS_HOST", "localhost"),
			Port:             getEnv("REDIS_PORT", "6379"),
			Password:         getEnv("REDIS_PASSWORD", ""),
			DB:               getIntEnv("REDIS_DB", 0),
			LocationCacheTTL: getDurationEnv("LOCATION_CACHE_TTL", 1*time.Hour),
		},
		JWT: JWTConfig{
			SecretKey:    getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
			AccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 24*time.Hour),
			Issuer:       getEnv("JWT_ISSUER", "carrental"),
		},
		Kafka: KafkaConfig{
			Enabled:     getBoolEnv("KAFKA_ENABLED", false),
			Brokers:     getListEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			OrdersTopic: getEnv("KAFKA_ORDERS_TOPIC", "carrental.orders"),
		},
		Search: SearchConfig{
			DefaultPageSize: getIntEnv("SEARCH_DEFAULT_PAGE_SIZE", 10),
			MaxPageSize:     getIntEnv("SEARCH_MAX_PAGE_SIZE", 100),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения, без которых сервис не может работать
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.Search.DefaultPageSize <= 0 || c.Search.MaxPageSize < c.Search.DefaultPageSize {
		return fmt.Errorf("invalid search page size limits: default=%d max=%d",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must be set when KAFKA_ENABLED=true")
	}
	return nil
}

// URL возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// Address возвращает адрес сервера
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Address возвращает адрес Redis
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Вспомогательные функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv читает список значений через запятую
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
