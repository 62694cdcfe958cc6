package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"KejaHook"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"kejahook"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	Mpesa struct {
		BaseURL        string        `envconfig:"MPESA_BASE_URL" default:"https://sandbox.safaricom.co.ke"`
		ShortCode      string        `envconfig:"MPESA_BUSINESS_SHORT_CODE"`
		PassKey        string        `envconfig:"MPESA_PASS_KEY"`
		ConsumerKey    string        `envconfig:"MPESA_CONSUMER_KEY"`
		ConsumerSecret string        `envconfig:"MPESA_CONSUMER_SECRET"`
		CallbackURL    string        `envconfig:"MPESA_CALLBACK_URL"`
		Timeout        time.Duration `envconfig:"MPESA_TIMEOUT" default:"30s"`
	}

	Payments struct {
		PartnershipFee int64         `envconfig:"PARTNERSHIP_FEE" default:"50000"`
		RepairInterval time.Duration `envconfig:"PAYMENT_REPAIR_INTERVAL" default:"1m"`
		// Pending transactions older than this are polled against the gateway.
		PollAge time.Duration `envconfig:"PAYMENT_POLL_AGE" default:"2m"`
	}

	Notify struct {
		WebhookURL string `envconfig:"NOTIFY_WEBHOOK_URL"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
