package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT string
	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// pagination config
	PAGE_SIZE_DEFAULT int
	PAGE_SIZE_MAX     int
	// document storage config
	DOCUMENT_STORAGE_DIR string
	// employee search index; empty disables the feature
	ELASTIC_URL string
	// export layout overrides; empty keeps the built-in layouts
	EXPORT_EMPLOYEE_LAYOUT   string
	EXPORT_ATTENDANCE_LAYOUT string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
}

func LoadEnvConfig() error {
	// A missing .env file is fine; env vars may come from the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:                 getEnvString("APP_PORT", "8080"),
		DB_HOST:                  getEnvString("DB_HOST", "localhost"),
		DB_PORT:                  getEnvInt("DB_PORT", 5432),
		DB_USER:                  getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:              getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:                  getEnvString("DB_NAME", "hrms"),
		DB_SSL_MODE:              getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME:     getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:        getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:        getEnvInt("DB_MAX_OPEN_CONNS", 100),
		PAGE_SIZE_DEFAULT:        getEnvInt("PAGE_SIZE_DEFAULT", 15),
		PAGE_SIZE_MAX:            getEnvInt("PAGE_SIZE_MAX", 100),
		DOCUMENT_STORAGE_DIR:     getEnvString("DOCUMENT_STORAGE_DIR", "storage/documents"),
		ELASTIC_URL:              getEnvString("ELASTIC_URL", ""),
		EXPORT_EMPLOYEE_LAYOUT:   getEnvString("EXPORT_EMPLOYEE_LAYOUT", ""),
		EXPORT_ATTENDANCE_LAYOUT: getEnvString("EXPORT_ATTENDANCE_LAYOUT", ""),
		LOG_FILE_PATH:            getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:                getEnvString("LOG_LEVEL", "info"),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
