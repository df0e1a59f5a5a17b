package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=168h"`
	BaseURL    string        `env:"BASE_URL,    default=http://localhost:8080"`

	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Requests RequestsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=feedback_flow"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig selects and configures the mail backend. When Enabled is false
// the process falls back to the log-only notification sink.
type SMTPConfig struct {
	Enabled  bool   `env:"SMTP_ENABLED,  default=false"`
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// RequestsConfig tunes the feedback-request lifecycle.
type RequestsConfig struct {
	// TTL is how long a pending request stays answerable before the sweep
	// expires it.
	TTL           time.Duration `env:"REQUEST_TTL,    default=720h"`
	SweepEnabled  bool          `env:"SWEEP_ENABLED,  default=true"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL, default=1h"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT, default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
