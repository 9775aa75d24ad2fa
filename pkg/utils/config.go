package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Gateway   GatewayConfig
	Email     EmailConfig
	AMQP      AMQPConfig
	Timeouts  TimeoutConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

// StoreConfig selects the reservation store: "postgres" or "mongo".
type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig enables the capacity window lock when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
	LockWait time.Duration
}

type GatewayConfig struct {
	BaseURL          string
	APIKey           string
	CustomerID       string
	SplitWalletID    string
	FetchPixQrCode   bool
	WebhookTokenHash string
}

// EmailConfig enables confirmation emails when Host is set.
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// AMQPConfig enables payment event publishing when URL is set.
type AMQPConfig struct {
	URL   string
	Queue string
}

type TimeoutConfig struct {
	Store   time.Duration
	Gateway time.Duration
	Notify  time.Duration
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "activity-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "activity_booking")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_LOCK_TTL", "10s")
	viper.SetDefault("REDIS_LOCK_WAIT", "5s")
	viper.SetDefault("ASAAS_BASE_URL", "https://api.asaas.com/v3")
	viper.SetDefault("ASAAS_FETCH_PIX_QRCODE", true)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("AMQP_QUEUE", "reservation.paid")
	viper.SetDefault("STORE_TIMEOUT", "5s")
	viper.SetDefault("GATEWAY_TIMEOUT", "15s")
	viper.SetDefault("NOTIFY_TIMEOUT", "20s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	viper.SetDefault("RATE_LIMIT_BURST", 5)

	viper.AutomaticEnv()

	// .env is optional in containers where everything comes from the environment
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(viper.GetString("STORE_DRIVER")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			LockTTL:  viper.GetDuration("REDIS_LOCK_TTL"),
			LockWait: viper.GetDuration("REDIS_LOCK_WAIT"),
		},
		Gateway: GatewayConfig{
			BaseURL:          viper.GetString("ASAAS_BASE_URL"),
			APIKey:           viper.GetString("ASAAS_API_KEY"),
			CustomerID:       viper.GetString("ASAAS_CUSTOMER_ID"),
			SplitWalletID:    viper.GetString("ASAAS_SPLIT_WALLET_ID"),
			FetchPixQrCode:   viper.GetBool("ASAAS_FETCH_PIX_QRCODE"),
			WebhookTokenHash: viper.GetString("ASAAS_WEBHOOK_TOKEN_HASH"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		AMQP: AMQPConfig{
			URL:   viper.GetString("AMQP_URL"),
			Queue: viper.GetString("AMQP_QUEUE"),
		},
		Timeouts: TimeoutConfig{
			Store:   viper.GetDuration("STORE_TIMEOUT"),
			Gateway: viper.GetDuration("GATEWAY_TIMEOUT"),
			Notify:  viper.GetDuration("NOTIFY_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
