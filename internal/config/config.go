package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/notify"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Notify   NotifyConfig
	Uploads  UploadConfig
	Cron     CronConfig
	Admin    AdminSeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// SMTPConfig holds outgoing mail configuration. An empty Host means
// messages are logged instead of sent.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Insecure bool
}

// NotifyConfig selects how notifications leave the API process
type NotifyConfig struct {
	Driver         string // "memory" or "rabbitmq"
	Workers        int
	Buffer         int
	RabbitURL      string
	RabbitExchange string
	RabbitQueue    string
	RabbitDLX      string
	Prefetch       int
}

// Rabbit returns the broker topology shared by the API and cmd/notifier
func (n NotifyConfig) Rabbit() notify.RabbitConfig {
	return notify.RabbitConfig{
		URL:      n.RabbitURL,
		Exchange: n.RabbitExchange,
		Queue:    n.RabbitQueue,
		DLX:      n.RabbitDLX,
		Prefetch: n.Prefetch,
	}
}

// UploadConfig holds file storage configuration
type UploadConfig struct {
	Dir       string
	URLPrefix string
}

// CronConfig holds scheduler configuration
type CronConfig struct {
	Enabled           bool
	ReminderSpec      string
	ReminderAfterDays int
}

// AdminSeedConfig is the account created on first start in dev mode
type AdminSeedConfig struct {
	Username string
	Email    string
	Password string
}

// Notification drivers
const (
	NotifyDriverMemory   = "memory"
	NotifyDriverRabbitMQ = "rabbitmq"
)

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	// Build config based on APP_MODE
	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		SMTP:     loadSMTPConfig(appMode),
		Notify:   loadNotifyConfig(),
		Uploads: UploadConfig{
			Dir:       getEnv("UPLOAD_DIR", "./uploads"),
			URLPrefix: "/uploads",
		},
		Cron: CronConfig{
			Enabled:           getEnvBool("CRON_ENABLED", true),
			ReminderSpec:      getEnv("CRON_REMINDER_SPEC", "0 30 8 * * *"),
			ReminderAfterDays: getEnvInt("REMINDER_AFTER_DAYS", 3),
		},
		Admin: AdminSeedConfig{
			Username: getEnv("SEED_ADMIN_USERNAME", "admin"),
			Email:    getEnv("SEED_ADMIN_EMAIL", "admin@digibox.lk"),
			Password: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// validate rejects settings that would only fail later at runtime
func (c *Config) validate() error {
	if c.IsProd() && (c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret) {
		return fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}
	if c.JWT.AccessTokenMins <= 0 {
		return fmt.Errorf("invalid ACCESS_TOKEN_MINUTES: %d", c.JWT.AccessTokenMins)
	}
	switch c.Notify.Driver {
	case NotifyDriverMemory:
	case NotifyDriverRabbitMQ:
		if c.Notify.RabbitURL == "" {
			return fmt.Errorf("RABBIT_URL is required when NOTIFY_DRIVER=rabbitmq")
		}
	default:
		return fmt.Errorf("invalid NOTIFY_DRIVER: '%s' (must be 'memory' or 'rabbitmq')", c.Notify.Driver)
	}
	return nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "digibox"),
	}
}

const defaultJWTSecret = "default_secret"

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", defaultJWTSecret),
		AccessTokenMins: getEnvInt("ACCESS_TOKEN_MINUTES", 120),
	}
}

// loadSMTPConfig loads mail server config based on mode
func loadSMTPConfig(mode string) SMTPConfig {
	prefix := modePrefix(mode)

	return SMTPConfig{
		Host:     getEnv(prefix+"SMTP_HOST", ""),
		Port:     getEnvInt(prefix+"SMTP_PORT", 587),
		Username: getEnv(prefix+"SMTP_USER", ""),
		Password: getEnv(prefix+"SMTP_PASS", ""),
		From:     getEnv("MAIL_FROM", "DigiBox <noreply@digibox.lk>"),
		Insecure: getEnvBool(prefix+"SMTP_INSECURE", false),
	}
}

// loadNotifyConfig loads the notification transport config
func loadNotifyConfig() NotifyConfig {
	return NotifyConfig{
		Driver:         strings.ToLower(strings.TrimSpace(getEnv("NOTIFY_DRIVER", NotifyDriverMemory))),
		Workers:        getEnvInt("NOTIFY_WORKERS", 2),
		Buffer:         getEnvInt("NOTIFY_BUFFER", 256),
		RabbitURL:      getEnv("RABBIT_URL", ""),
		RabbitExchange: getEnv("RABBIT_EXCHANGE", "digibox.notify"),
		RabbitQueue:    getEnv("RABBIT_QUEUE", "digibox.email"),
		RabbitDLX:      getEnv("RABBIT_DLX", "digibox.notify.dlx"),
		Prefetch:       getEnvInt("RABBIT_PREFETCH", 8),
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://digibox.lk"
	}
	return origins
}
