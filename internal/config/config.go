package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "super-secret-key-for-dev"

// Config holds the application configuration.
type Config struct {
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	AppEnv         string        `mapstructure:"APP_ENV"`
	Port           string        `mapstructure:"PORT"`
	CookieName     string        `mapstructure:"COOKIE_NAME"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	PasswordHash   string        `mapstructure:"PASSWORD_HASH"`
	TeamPresets    string        `mapstructure:"TEAM_PRESETS"`
	RealtimeListen bool          `mapstructure:"REALTIME_LISTEN"`
	AutoMigrate    bool          `mapstructure:"AUTO_MIGRATE"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFile        string        `mapstructure:"LOG_FILE"`
}

// IsProduction reports whether the process runs with production settings
// (secure cookies, release mode, no swagger).
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Presets returns the preset team names offered by the registration form.
func (c *Config) Presets() []string {
	var out []string
	for _, p := range strings.Split(c.TeamPresets, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate fails when the store endpoint is missing or the signing secret
// is unusable for the configured environment.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	switch c.PasswordHash {
	case "bcrypt", "argon2id":
	default:
		return fmt.Errorf("PASSWORD_HASH must be bcrypt or argon2id, got %q", c.PasswordHash)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("COOKIE_NAME", "token")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("PASSWORD_HASH", "bcrypt")
	v.SetDefault("TEAM_PRESETS", "Cá Kiếm,Minato")
	v.SetDefault("REALTIME_LISTEN", false)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

// Load reads the configuration from an optional .env file in dir and from
// environment variables. Environment variables win over the file.
// The returned bool is false when no .env file was found.
func Load(dir string) (*Config, bool, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	setDefaults(v)

	// Keys are only picked up from the environment when viper knows them,
	// which setDefaults guarantees.
	v.AutomaticEnv()

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, false, fmt.Errorf("read .env: %w", err)
		}
		found = false
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, found, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, found, nil
}
