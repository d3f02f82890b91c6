package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool

	SMTPHost     string
	SMTPPort     int
	MailUser     string
	MailPassword string

	UploadDir   string
	CORSOrigins string
}

// Load reads the configuration from the environment. Call godotenv.Load first
// if a .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort:      GetEnv("APP_PORT", "3000"),
		AppEnv:       GetEnv("APP_ENV", "development"),
		DBDriver:     strings.ToLower(GetEnv("DB_DRIVER", "mysql")),
		DBHost:       GetEnv("DB_HOST", "127.0.0.1"),
		DBPort:       GetEnv("DB_PORT", ""),
		DBUser:       GetEnv("DB_USER", "root"),
		DBPassword:   GetEnv("DB_PASSWORD", ""),
		DBName:       GetEnv("DB_NAME", "office_records"),
		JWTSecret:    GetEnv("JWT_SECRET", ""),
		TokenTTL:     GetEnvAsDuration("TOKEN_TTL", 8*time.Hour),
		CookieSecure: GetEnvAsBool("COOKIE_SECURE", false),
		SMTPHost:     GetEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     GetEnvAsInt("SMTP_PORT", 587),
		MailUser:     GetEnv("EMAIL", ""),
		MailPassword: GetEnv("EMAIL_PASS", ""),
		UploadDir:    GetEnv("UPLOAD_DIR", "./uploads"),
		CORSOrigins:  GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}

	if cfg.DBDriver != "mysql" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN builds the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.DBHost, port, c.DBUser, c.DBPassword, c.DBName)
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		// user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, port, c.DBName)
	}
}

// GetEnv returns the environment variable or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsDuration accepts Go duration strings ("8h", "30m").
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return fallback
}
