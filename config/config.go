package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string `validate:"required"`
	PostgresPort     string `validate:"required,numeric"`
	PostgresUser     string `validate:"required"`
	PostgresPassword string
	PostgresDB       string `validate:"required"`
	PostgresSSLMode  string `validate:"oneof=disable require verify-ca verify-full"`

	StoreConnectRetries int `validate:"min=1"`
	StoreHasGrouping    bool

	KeyColumn  string `validate:"required"`
	NameColumn string
	ParseMode  string `validate:"oneof=lenient strict"`
	RulesFile  string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int    `validate:"min=0"`
	RunLockTTLSecs int    `validate:"min=1"`
	HTTPAddr       string `validate:"required"`
	LogLevel       string `validate:"oneof=ERROR WARN INFO DEBUG"`
}

var validate = validator.New()

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "directory"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "employee_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		StoreConnectRetries: getEnvInt("STORE_CONNECT_RETRIES", 5),
		StoreHasGrouping:    getEnvBool("STORE_HAS_GROUPING", true),

		KeyColumn:  getEnv("KEY_COLUMN", "Player"),
		NameColumn: getEnv("NAME_COLUMN", "Player Name"),
		ParseMode:  strings.ToLower(getEnv("PARSE_MODE", "lenient")),
		RulesFile:  getEnv("RULES_FILE", ""),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RunLockTTLSecs: getEnvInt("RUN_LOCK_TTL_SECONDS", 120),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		LogLevel:       strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
	}
}

// Validate reports the first invalid field, if any.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// StrictParse reports whether malformed rows should fail a run.
func (c *Config) StrictParse() bool {
	return c.ParseMode == "strict"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
