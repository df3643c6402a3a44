package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// secrets are never expected in the YAML file, so viper has to be told about them explicitly.
var secretKeys = []string{"postgres.user", "postgres.password", "postgres.db"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "feedback-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 5000)
	v.SetDefault("app.shutdown_timeout", "10s")

	v.SetDefault("storage.driver", DriverPostgres)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.auto_migrate", true)

	v.SetDefault("http.cors_allowed_origins", []string{"*"})
	v.SetDefault("pagination.default_per_page", 10)
}

// Load reads the YAML file at path (skipped when path is empty) and overlays
// APP_* environment variables, e.g. APP_POSTGRES_HOST for postgres.host.
// A bare PORT variable is honoured for app.port as well.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	for _, key := range secretKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	if err := v.BindEnv("app.port", "APP_APP_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind env app.port: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	validate := validator.New()
	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	if config.Storage.Driver == DriverPostgres {
		if err := validate.Struct(&config.Postgres); err != nil {
			return nil, fmt.Errorf("postgres config validation error: %w", err)
		}
	}
	return &config, nil
}
