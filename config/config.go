package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"skill-registry/internal/model"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Skill registry specifics
	Webhook  WebhookConfig
	GitHub   GitHubConfig
	Database DatabaseConfig
	Scanner  ScannerConfig
	Registry RegistryConfig
	Admin    AdminConfig
	Metrics  MetricsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port           int
	Mode           string
	TrustedProxies []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type WebhookConfig struct {
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
	MaxBodyBytes    int64
}

type GitHubConfig struct {
	Token     string
	APIURL    string
	UserAgent string
}

type DatabaseConfig struct {
	Path string
}

type ScannerConfig struct {
	StrictMode bool
}

type RegistryConfig struct {
	TrustedOrgs    []string
	MinInstallTier model.QualityTier
}

type AdminConfig struct {
	APIKey string
}

type MetricsConfig struct {
	Enabled bool
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.TrustedProxies = stringList("http_server.trusted_proxies")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Webhooks
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("github_webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.MaxBodyBytes = viper.GetInt64("webhook.max_body_bytes")
	cfg.Webhook.AllowedIPs = stringList("webhook.allowed_ips")

	// GitHub
	cfg.GitHub.Token = viper.GetString("github.token")
	if token := viper.GetString("github_token"); token != "" {
		cfg.GitHub.Token = token
	}
	cfg.GitHub.APIURL = viper.GetString("github.api_url")
	cfg.GitHub.UserAgent = viper.GetString("github.user_agent")

	// Storage
	cfg.Database.Path = viper.GetString("database.path")
	if dbPath := viper.GetString("database_path"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Trust pipeline
	cfg.Scanner.StrictMode = viper.GetBool("scanner.strict_mode")
	cfg.Registry.TrustedOrgs = stringList("registry.trusted_orgs")
	minTier, err := model.ParseQualityTier(viper.GetString("registry.min_install_tier"))
	if err != nil {
		return nil, fmt.Errorf("registry.min_install_tier: %w", err)
	}
	cfg.Registry.MinInstallTier = minTier

	// Admin & metrics
	cfg.Admin.APIKey = viper.GetString("admin.api_key")
	if apiKey := viper.GetString("admin_api_key"); apiKey != "" {
		cfg.Admin.APIKey = apiKey
	}
	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.HTTPServer.Port <= 0 {
		return fmt.Errorf("http_server.port must be positive")
	}
	if cfg.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if cfg.Webhook.RateLimitPerMin < 0 {
		return fmt.Errorf("webhook.rate_limit_per_min must not be negative")
	}
	if cfg.Environment.Name == string(model.EnvironmentProduction) && cfg.Webhook.Secret == "" {
		return fmt.Errorf("webhook.secret (GITHUB_WEBHOOK_SECRET) is required in production")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("webhook.max_body_bytes", 25<<20)
	viper.SetDefault("github.api_url", "https://api.github.com")
	viper.SetDefault("github.user_agent", "skill-registry/1.0")
	viper.SetDefault("database.path", "skill-registry.db")
	viper.SetDefault("scanner.strict_mode", false)
	viper.SetDefault("registry.min_install_tier", model.DefaultMinInstallTier.String())
	viper.SetDefault("metrics.enabled", true)
}

// stringList reads a list key that may come from YAML or a comma-separated
// env var.
func stringList(key string) []string {
	var raw []string
	if v, ok := viper.Get(key).(string); ok {
		raw = strings.Split(v, ",")
	} else {
		raw = viper.GetStringSlice(key)
	}

	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
