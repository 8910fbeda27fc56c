package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig       `mapstructure:"server"`
	Metrics    MetricsConfig      `mapstructure:"metrics"`
	Database   DatabaseConfig     `mapstructure:"database"`
	Redis      RedisConfig        `mapstructure:"redis"`
	Oracles    OraclesConfig      `mapstructure:"oracles"`
	Backend    BackendConfig      `mapstructure:"backend"`
	Gates      GatesConfig        `mapstructure:"gates"`
	Thresholds map[string]float64 `mapstructure:"thresholds"`
	Audit      AuditConfig        `mapstructure:"audit"`
	Registry   RegistryConfig     `mapstructure:"registry"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	ProxyPort   int    `mapstructure:"proxy_port"`
	AdminPort   int    `mapstructure:"admin_port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type OracleCredentials struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

type OraclesConfig struct {
	Score     OracleCredentials `mapstructure:"score"`
	Vision    OracleCredentials `mapstructure:"vision"`
	Embedding OracleCredentials `mapstructure:"embedding"`
}

type BackendConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

type GatesConfig struct {
	Gate1TimeoutMS int `mapstructure:"gate1_timeout_ms"`
	Gate2BudgetMS  int `mapstructure:"gate2_budget_ms"`
}

type AuditConfig struct {
	BufferSize     int `mapstructure:"buffer_size"`
	WriteTimeoutMS int `mapstructure:"write_timeout_ms"`
	RetryBaseMS    int `mapstructure:"retry_base_ms"`
	RetryCapMS     int `mapstructure:"retry_cap_ms"`
	MaxAttempts    int `mapstructure:"max_attempts"`
	RetentionDays  int `mapstructure:"retention_days"`
}

type RegistryConfig struct {
	RefreshIntervalMS int `mapstructure:"refresh_interval_ms"`
}

var globalConfig Config

func Load(configPath string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultValues()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&globalConfig, decodeHook); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

func setDefaultValues() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.proxy_port", 8080)
	viper.SetDefault("server.admin_port", 8081)
	viper.SetDefault("server.metrics_port", 9090)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("gates.gate1_timeout_ms", 10000)
	viper.SetDefault("gates.gate2_budget_ms", 30000)
	viper.SetDefault("backend.timeout_ms", 60000)
	viper.SetDefault("thresholds.jailbreak", 0.75)
	viper.SetDefault("thresholds.ip_mimicry", 0.75)
	viper.SetDefault("audit.buffer_size", 1024)
	viper.SetDefault("audit.write_timeout_ms", 5000)
	viper.SetDefault("audit.retry_base_ms", 1000)
	viper.SetDefault("audit.retry_cap_ms", 60000)
	viper.SetDefault("audit.max_attempts", 10)
	viper.SetDefault("audit.retention_days", 365)
	viper.SetDefault("registry.refresh_interval_ms", 30000)
}

func GetConfig() *Config {
	return &globalConfig
}
