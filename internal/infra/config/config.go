package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL   string
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	JWTSecret       string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RegisterMaxAttempts int
	RegisterWindow      time.Duration
	LoginMaxAttempts    int
	LoginWindow         time.Duration

	HTTPAddress      string
	AllowedOrigins   []string
	AllowCredentials bool
	LogLevel         string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_URL", "REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_ISSUER", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"REGISTER_MAX_ATTEMPTS", "REGISTER_WINDOW", "LOGIN_MAX_ATTEMPTS", "LOGIN_WINDOW",
		"HTTP_ADDRESS", "ALLOWED_ORIGINS", "ALLOW_CREDENTIALS", "LOG_LEVEL",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("REDIS_ADDRESS", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ISSUER", "auth-service")
	viper.SetDefault("ACCESS_TOKEN_TTL", "15m")
	viper.SetDefault("REFRESH_TOKEN_TTL", "168h")
	viper.SetDefault("REGISTER_MAX_ATTEMPTS", 5)
	viper.SetDefault("REGISTER_WINDOW", "1h")
	viper.SetDefault("LOGIN_MAX_ATTEMPTS", 10)
	viper.SetDefault("LOGIN_WINDOW", "10m")
	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisAddress:        viper.GetString("REDIS_ADDRESS"),
		RedisPassword:       viper.GetString("REDIS_PASSWORD"),
		RedisDB:             viper.GetInt("REDIS_DB"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		Issuer:              viper.GetString("JWT_ISSUER"),
		AccessTokenTTL:      viper.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:     viper.GetDuration("REFRESH_TOKEN_TTL"),
		RegisterMaxAttempts: viper.GetInt("REGISTER_MAX_ATTEMPTS"),
		RegisterWindow:      viper.GetDuration("REGISTER_WINDOW"),
		LoginMaxAttempts:    viper.GetInt("LOGIN_MAX_ATTEMPTS"),
		LoginWindow:         viper.GetDuration("LOGIN_WINDOW"),
		HTTPAddress:         viper.GetString("HTTP_ADDRESS"),
		AllowedOrigins:      viper.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:    viper.GetBool("ALLOW_CREDENTIALS"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}
