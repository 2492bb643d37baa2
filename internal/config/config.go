package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	AssistURL      string        `mapstructure:"ASSIST_URL"`
	AssistTimeout  time.Duration `mapstructure:"ASSIST_TIMEOUT"`
	MigrateOnStart bool          `mapstructure:"MIGRATE_ON_START"`
	MigrationsDir  string        `mapstructure:"MIGRATIONS_DIR"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ASSIST_TIMEOUT", "90s")
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
