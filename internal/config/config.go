package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

// Attendance store backends
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Dashboard DashboardConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds the optional snapshot mirror settings; an empty Host disables it
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret               string
	StreamExpirationTime string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL []string
}

type DashboardConfig struct {
	Store            string
	Classes          []string
	RefreshInterval  time.Duration
	MonthlyMode      string
	FetchConcurrency int
	TopPerformers    int
	RecentActivity   int
	SnapshotTTL      time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine; the process environment still applies
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Error loading .env file", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// MongoDB configuration
	config.Mongo = MongoConfig{
		URI:      getEnv("MONGODB_URI", ""),
		Database: getEnv("MONGODB_DATABASE", "attendance"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		FrontendURL: getEnvSlice("FRONTEND_URL"),
	}
	if len(config.App.FrontendURL) == 0 {
		config.App.FrontendURL = []string{"http://localhost:3000"}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:               getEnv("JWT_SECRET_KEY", ""),
		StreamExpirationTime: getEnv("JWT_STREAM_EXPIRATION_TIME", "5m"),
	}

	// Dashboard configuration
	refreshInterval, err := time.ParseDuration(getEnv("DASHBOARD_REFRESH_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_REFRESH_INTERVAL: %w", err)
	}

	snapshotTTL, err := time.ParseDuration(getEnv("DASHBOARD_SNAPSHOT_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_SNAPSHOT_TTL: %w", err)
	}

	concurrency, err := getEnvInt("DASHBOARD_FETCH_CONCURRENCY", 7)
	if err != nil {
		return nil, err
	}
	topPerformers, err := getEnvInt("DASHBOARD_TOP_PERFORMERS", 5)
	if err != nil {
		return nil, err
	}
	recentActivity, err := getEnvInt("DASHBOARD_RECENT_ACTIVITY", 10)
	if err != nil {
		return nil, err
	}

	config.Dashboard = DashboardConfig{
		Store:            strings.ToLower(getEnv("ATTENDANCE_STORE", StorePostgres)),
		Classes:          getEnvSlice("DASHBOARD_CLASSES"),
		RefreshInterval:  refreshInterval,
		MonthlyMode:      getEnv("DASHBOARD_MONTHLY_MODE", "extrapolate"),
		FetchConcurrency: concurrency,
		TopPerformers:    topPerformers,
		RecentActivity:   recentActivity,
		SnapshotTTL:      snapshotTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.StreamExpirationTime); err != nil {
		return fmt.Errorf("invalid JWT_STREAM_EXPIRATION_TIME: %w", err)
	}

	switch c.Dashboard.Store {
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGODB_URI is required when ATTENDANCE_STORE=mongo")
		}
	default:
		return fmt.Errorf("ATTENDANCE_STORE must be %q or %q, got %q", StorePostgres, StoreMongo, c.Dashboard.Store)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	for _, classCode := range c.Dashboard.Classes {
		if !validator.IsValidClassCode(classCode) {
			return fmt.Errorf("DASHBOARD_CLASSES contains an invalid class code %q", classCode)
		}
	}
	if c.Dashboard.RefreshInterval <= 0 {
		return fmt.Errorf("DASHBOARD_REFRESH_INTERVAL must be positive")
	}
	if c.Dashboard.FetchConcurrency < 1 {
		return fmt.Errorf("DASHBOARD_FETCH_CONCURRENCY must be at least 1")
	}
	if c.Dashboard.TopPerformers < 1 || c.Dashboard.RecentActivity < 1 {
		return fmt.Errorf("DASHBOARD_TOP_PERFORMERS and DASHBOARD_RECENT_ACTIVITY must be at least 1")
	}
	switch strings.ToLower(c.Dashboard.MonthlyMode) {
	case "extrapolate", "trailing":
	default:
		return fmt.Errorf("DASHBOARD_MONTHLY_MODE must be extrapolate or trailing, got %q", c.Dashboard.MonthlyMode)
	}
	return nil
}

// Location returns the dashboard's "today" time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RedisEnabled reports whether the snapshot mirror is configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
