package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"logistics/internal/core/application/allocation"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AllocationHour                 int
	AllocationMinute               int
	AllocationTimezone             string
	AllocationMaxRunDuration       time.Duration
	AllocationWarehouseConcurrency int

	KafkaHost                   string
	KafkaAllocationSummaryTopic string

	S3ReportBucket string
	S3ReportPrefix string

	JWTSecret string
	LogLevel  slog.Level
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// LoadConfig reads the environment, after loading .env when one is present.
// Every malformed variable is reported, not just the first.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	config := Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		AllocationHour:     intVar("ALLOCATION_HOUR", 7, &errs),
		AllocationMinute:   intVar("ALLOCATION_MINUTE", 0, &errs),
		AllocationTimezone: envOr("ALLOCATION_TIMEZONE", "UTC"),
		AllocationMaxRunDuration: durationVar("ALLOCATION_MAX_RUN_DURATION",
			allocation.DefaultMaxRunDuration, &errs),
		AllocationWarehouseConcurrency: intVar("ALLOCATION_WAREHOUSE_CONCURRENCY",
			allocation.DefaultWarehouseConcurrency, &errs),

		KafkaHost:                   os.Getenv("KAFKA_HOST"),
		KafkaAllocationSummaryTopic: os.Getenv("KAFKA_ALLOCATION_SUMMARY_TOPIC"),

		S3ReportBucket: os.Getenv("S3_REPORT_BUCKET"),
		S3ReportPrefix: os.Getenv("S3_REPORT_PREFIX"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := config.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}

	if config.AllocationWarehouseConcurrency < 1 {
		errs = append(errs, fmt.Errorf("ALLOCATION_WAREHOUSE_CONCURRENCY must be positive, got %d",
			config.AllocationWarehouseConcurrency))
	}
	if config.AllocationMaxRunDuration <= 0 {
		errs = append(errs, fmt.Errorf("ALLOCATION_MAX_RUN_DURATION must be positive, got %s",
			config.AllocationMaxRunDuration))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return config, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intVar(key string, fallback int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func durationVar(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}
