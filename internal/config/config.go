package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type StoreConfig struct {
	URL             string `yaml:"url"`
	AnonKey         string `yaml:"anon_key"`
	ServiceEmail    string `yaml:"service_email"`
	ServicePassword string `yaml:"service_password"`
}

type ProcessorConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	TrialPriceID  string `yaml:"trial_price_id"`
	Currency      string `yaml:"currency"`
	ReturnURL     string `yaml:"return_url"`
}

// CheckoutConfig collapses the window/quantity/amount knobs that used to
// drift across handler variants into one place resolved at startup.
type CheckoutConfig struct {
	TrialWindowDays  int   `yaml:"trial_window_days"`
	TrialDays        int   `yaml:"trial_days"`
	ValidationAmount int64 `yaml:"validation_amount"`
	RefundThreshold  int   `yaml:"refund_threshold"`
	CooldownDays     int   `yaml:"cooldown_days"`
	MaxOrders        int   `yaml:"max_orders"`
	DefaultQuantity  int   `yaml:"default_quantity"`
}

type FulfillmentConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromName  string `yaml:"from_name"`
	FromEmail string `yaml:"from_email"`
	Subject   string `yaml:"subject"`
	ContactTo string `yaml:"contact_to"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	APIKey    string        `yaml:"api_key"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	AccessTTL time.Duration `yaml:"access_ttl"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Store       StoreConfig       `yaml:"store"`
	Processor   ProcessorConfig   `yaml:"processor"`
	Checkout    CheckoutConfig    `yaml:"checkout"`
	Fulfillment FulfillmentConfig `yaml:"fulfillment"`
	Email       EmailConfig       `yaml:"email"`
	Auth        AuthConfig        `yaml:"auth"`
	Redis       RedisConfig       `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

// TrialWindow returns the trial window as a duration.
func (c CheckoutConfig) TrialWindow() time.Duration {
	return time.Duration(c.TrialWindowDays) * 24 * time.Hour
}

// Cooldown returns the reorder cooldown as a duration.
func (c CheckoutConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownDays) * 24 * time.Hour
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Processor.Currency == "" {
		cfg.Processor.Currency = "eur"
	}
	if cfg.Checkout.TrialWindowDays <= 0 {
		cfg.Checkout.TrialWindowDays = 30
	}
	if cfg.Checkout.TrialDays <= 0 {
		cfg.Checkout.TrialDays = 14
	}
	if cfg.Checkout.ValidationAmount <= 0 {
		cfg.Checkout.ValidationAmount = 100
	}
	if cfg.Checkout.RefundThreshold <= 0 {
		cfg.Checkout.RefundThreshold = 500
	}
	if cfg.Checkout.CooldownDays <= 0 {
		cfg.Checkout.CooldownDays = 7
	}
	if cfg.Checkout.MaxOrders <= 0 {
		cfg.Checkout.MaxOrders = 4
	}
	if cfg.Checkout.DefaultQuantity <= 0 {
		cfg.Checkout.DefaultQuantity = 100
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 120 * time.Minute
	}
	if cfg.Auth.AccessTTL <= 0 {
		cfg.Auth.AccessTTL = 10 * time.Minute
	}

	// Minimal validation
	if cfg.Store.URL == "" {
		return nil, errors.New("store.url is required")
	}
	if cfg.Store.ServiceEmail == "" || cfg.Store.ServicePassword == "" {
		return nil, errors.New("store.service_email and store.service_password are required")
	}
	if cfg.Processor.SecretKey == "" {
		return nil, errors.New("processor.secret_key is required")
	}
	if cfg.Fulfillment.URL == "" || cfg.Fulfillment.Key == "" {
		return nil, errors.New("fulfillment.url and fulfillment.key are required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
