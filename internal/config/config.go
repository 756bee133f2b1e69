package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Env     string `yaml:"env"`
		BaseURL string `yaml:"base_url"` // Public URL used in invitation links

		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Storage struct {
		Type      string `yaml:"type"` // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"`
		BaseURL   string `yaml:"base_url"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`

	Billing struct {
		WebhookSecret string `yaml:"webhook_secret"`
		SecretKey     string `yaml:"secret_key"`
		PriceID       string `yaml:"price_id"`
	} `yaml:"billing"`

	Invitations struct {
		CodePeriodSeconds uint   `yaml:"code_period_seconds"`
		Issuer            string `yaml:"issuer"`
	} `yaml:"invitations"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads .env (if present), then the YAML file at CONFIG_PATH
// (default config/config.yaml), then applies environment overrides.
// A missing YAML file is fine when DATABASE_URL is set in the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	} else if os.Getenv("DATABASE_URL") == "" {
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnv(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	AppConfig = cfg
	return cfg, nil
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.BaseURL = "http://localhost:4000"
	cfg.JWT.TTL = 60
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "welcome@nautikos.ae"
	cfg.Email.FromName = "Nautikos"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/files"
	cfg.Invitations.CodePeriodSeconds = 120 * 60
	cfg.Invitations.Issuer = "Nautikos"
	return &cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.BaseURL, "SERVER_BASE_URL")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Billing.WebhookSecret, "BILLING_WEBHOOK_SECRET")
	setString(&cfg.Billing.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&cfg.Billing.SecretKey, "STRIPE_SECRET_KEY")
	setString(&cfg.Billing.PriceID, "STRIPE_PRICE_ID")
	setString(&cfg.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")

	if port, err := strconv.Atoi(os.Getenv("SERVER_PORT")); err == nil && port > 0 {
		cfg.Server.Port = port
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// GetConfig returns the loaded configuration. LoadConfig must have succeeded.
func GetConfig() *Config {
	return AppConfig
}
