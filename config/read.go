package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Alijeyrad/clinic_console/pkg/constants"
)

// ReadConfig loads clinic.yaml from configPath. The file is optional; every
// key can also come from the environment, e.g. CLINIC_API_BASE_URL
// overrides api.base_url.
func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}
	return config
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.user_agent", constants.AppName+"-console")

	v.SetDefault("session.store", SessionStoreFile)
	v.SetDefault("session.path", "")
	v.SetDefault("session.encryption_key", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.pool_size", 0)
	v.SetDefault("redis.min_idle_conns", 0)
	v.SetDefault("redis.dial_timeout_seconds", 0)
	v.SetDefault("redis.read_timeout_seconds", 0)
	v.SetDefault("redis.write_timeout_seconds", 0)

	v.SetDefault("display.date_format", "2006-01-02")
	v.SetDefault("display.datetime_format", "2006-01-02 15:04")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output.stderr", true)
	v.SetDefault("logging.output.file.enabled", false)
	v.SetDefault("logging.output.file.path", "logs/clinic.log")
	v.SetDefault("logging.output.file.max_size_mb", 10)
	v.SetDefault("logging.output.file.max_backups", 3)
	v.SetDefault("logging.output.file.max_age_days", 28)
	v.SetDefault("logging.output.file.compress", false)

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", constants.AppName)
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.environment", "development")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.otlp_endpoint", "")
	v.SetDefault("observability.tracing.otlp_insecure", false)
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", false)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("mock_api.port", 8080)
	v.SetDefault("mock_api.password_memory_kib", 64*1024)
	v.SetDefault("mock_api.password_iterations", 3)
	v.SetDefault("mock_api.rate_limit", 0)
}
