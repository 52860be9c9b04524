package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the API reads from the environment.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	GinMode     string `env:"GIN_MODE"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	AppBaseURL  string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`

	DB   DatabaseConfig `envPrefix:"DB_"`
	JWT  JWTConfig      `envPrefix:"JWT_"`
	SMTP SMTPConfig     `envPrefix:"SMTP_"`
	Log  LogConfig      `envPrefix:"LOG_"`
	Seed SeedConfig     `envPrefix:"SEED_"`
}

type DatabaseConfig struct {
	Driver   string `env:"DRIVER" envDefault:"mysql"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"3306"`
	Database string `env:"DATABASE" envDefault:"eduleave"`
	Username string `env:"USERNAME" envDefault:"root"`
	Password string `env:"PASSWORD"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	DebugSQL bool   `env:"DEBUG_SQL" envDefault:"false"`
}

type JWTConfig struct {
	Secret      string `env:"SECRET,required,notEmpty"`
	ExpireHours int    `env:"EXPIRE_HOURS" envDefault:"24"`
}

// TTL returns the token lifetime, falling back to 24h for non-positive values.
func (c JWTConfig) TTL() time.Duration {
	if c.ExpireHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.ExpireHours) * time.Hour
}

type SMTPConfig struct {
	Host          string `env:"HOST"`
	Port          int    `env:"PORT" envDefault:"587"`
	User          string `env:"USER"`
	Pass          string `env:"PASS"`
	From          string `env:"FROM"` // e.g. "EduLeave <no-reply@college.edu>"
	SkipTLSVerify bool   `env:"SKIP_TLS_VERIFY" envDefault:"false"`
}

type LogConfig struct {
	Dir        string `env:"DIR" envDefault:"./logs"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"50"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"28"`
}

type SeedConfig struct {
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@college.edu"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"password123"`
}

// IsProduction reports whether ENVIRONMENT is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
