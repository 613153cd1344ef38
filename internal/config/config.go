package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config reúne as configurações do serviço lidas do ambiente
type Config struct {
	Port string

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string
	DatabaseMaxConns int32
	DatabaseMinConns int32
	DBDebug          bool

	LogLevel  string
	LogFormat string

	OTelEnabled     bool
	OTLPEndpoint    string
	ServiceName     string
	OTelSampleRatio float64

	UploadDir string
	Location  *time.Location

	ShutdownTimeout time.Duration
}

// Load lê a configuração das variáveis de ambiente
func Load() (Config, error) {
	location, err := time.LoadLocation(getEnv("STORE_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid STORE_TIMEZONE: %w", err)
	}

	cfg := Config{
		Port: getEnv("PORT", "3000"),

		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseUser:     getEnv("DATABASE_USER", "root"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "pass"),
		DatabaseName:     getEnv("DATABASE_NAME", "store_db"),
		DatabaseSSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		DatabaseMaxConns: int32(getEnvInt("DATABASE_MAX_CONNS", 10)),
		DatabaseMinConns: int32(getEnvInt("DATABASE_MIN_CONNS", 2)),
		DBDebug:          getEnvBool("DB_DEBUG", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		OTelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		ServiceName:     getEnv("SERVICE_NAME", "store-backend"),
		OTelSampleRatio: getEnvFloat("OTEL_TRACES_SAMPLER_RATIO", 1),

		UploadDir: getEnv("UPLOAD_DIR", "public/uploads"),
		Location:  location,

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate verifica as combinações inválidas de configuração
func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if _, err := strconv.Atoi(c.DatabasePort); err != nil {
		return fmt.Errorf("invalid DATABASE_PORT %q", c.DatabasePort)
	}
	if c.DatabaseMaxConns < 1 || c.DatabaseMinConns < 0 || c.DatabaseMinConns > c.DatabaseMaxConns {
		return fmt.Errorf("invalid pool size: min=%d max=%d", c.DatabaseMinConns, c.DatabaseMaxConns)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	if c.OTelSampleRatio < 0 || c.OTelSampleRatio > 1 {
		return fmt.Errorf("invalid OTEL_TRACES_SAMPLER_RATIO %v", c.OTelSampleRatio)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	return nil
}

// DatabaseURL monta a connection string do PostgreSQL
func (c Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
