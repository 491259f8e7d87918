package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway credentials), security settings
// - default: Values common across all environments (timeouts, sweep cadence),
//   standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	Gateway GatewayConfig
	Engine  EngineConfig
	Invite  InviteConfig
	Bot     BotConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// GatewayConfig holds the payment gateway connection settings. StatusTimeout
// bounds the authoritative status check so the webhook handler never holds
// the inbound connection open waiting on the gateway.
type GatewayConfig struct {
	BaseURL       string        `envconfig:"GATEWAY_BASE_URL" default:"https://api.mercadopago.com"`
	AccessToken   string        `envconfig:"GATEWAY_ACCESS_TOKEN" required:"true"`
	Timeout       time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	StatusTimeout time.Duration `envconfig:"GATEWAY_STATUS_TIMEOUT" default:"5s"`
}

// EngineConfig drives the reconciliation engine. ExpiryWindow is the single
// authoritative cutoff for pending orders; upstream deployments mixed 1h and
// 24h values for the same concept, here it is one knob.
type EngineConfig struct {
	ExpiryWindow  time.Duration `envconfig:"ORDER_EXPIRY_WINDOW" default:"1h"`
	SweepInterval time.Duration `envconfig:"ORDER_SWEEP_INTERVAL" default:"5m"`
}

type InviteConfig struct {
	Secret string `envconfig:"INVITE_SECRET" required:"true"`
}

// BotConfig points at the messaging API used to hand deliveries to buyers.
type BotConfig struct {
	BaseURL string        `envconfig:"BOT_BASE_URL" default:"https://api.telegram.org"`
	Token   string        `envconfig:"BOT_TOKEN" required:"true"`
	Timeout time.Duration `envconfig:"BOT_TIMEOUT" default:"10s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Gateway: GatewayConfig{
			BaseURL:       "http://localhost:18080",
			AccessToken:   "test-token",
			Timeout:       2 * time.Second,
			StatusTimeout: time.Second,
		},
		Engine: EngineConfig{
			ExpiryWindow:  time.Hour,
			SweepInterval: time.Minute,
		},
		Invite: InviteConfig{
			Secret: "test-invite-secret",
		},
		Bot: BotConfig{
			BaseURL: "http://localhost:18081",
			Token:   "test-bot-token",
			Timeout: 2 * time.Second,
		},
	}
}
