package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	DBSlowQuery        time.Duration
	LogLevel           string
	LogFormat          string
	DeliveryStrictMode bool
	ShutdownTimeout    time.Duration
}

// LoadConfig reads the environment, after loading envFile into it when the
// file exists. Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "encomendas")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SLOW_QUERY_MS", 200)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DELIVERY_STRICT_MODE", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	cfg := Config{
		HTTPPort:           v.GetString("HTTP_PORT"),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		DBSslMode:          v.GetString("DB_SSLMODE"),
		DBSlowQuery:        time.Duration(v.GetInt("DB_SLOW_QUERY_MS")) * time.Millisecond,
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		DeliveryStrictMode: v.GetBool("DELIVERY_STRICT_MODE"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	if cfg.HTTPPort == "" {
		return Config{}, errors.New("HTTP_PORT must not be empty")
	}
	return cfg, nil
}

// DSN is the libpq connection string of the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
