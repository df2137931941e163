package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port        string
	Env         string
	CORSOrigin  string
	ReadTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

// RedisConfig is optional. An empty Host disables the login rate limiter.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type RateLimitConfig struct {
	LoginLimit  int
	LoginWindow time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func LoadConfig() (*Config, error) {
	return Load(".env")
}

// Load reads the given env file (if it exists) and overlays process environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_READ_TIMEOUT", "15s")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_LOGIN", 5)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	config := &Config{
		App: AppConfig{
			Port:        v.GetString("APP_PORT"),
			Env:         v.GetString("APP_ENV"),
			CORSOrigin:  v.GetString("CORS_ALLOWED_ORIGIN"),
			ReadTimeout: durationOr(v.GetString("APP_READ_TIMEOUT"), 15*time.Second),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       secret,
			AccessExpiry: durationOr(v.GetString("JWT_ACCESS_EXPIRY"), 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			LoginLimit:  v.GetInt("RATE_LIMIT_LOGIN"),
			LoginWindow: durationOr(v.GetString("RATE_LIMIT_WINDOW"), 15*time.Minute),
		},
	}

	return config, nil
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
