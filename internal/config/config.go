package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName      string
	Environment  string
	HTTP         HTTPConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Assistant    AssistantConfig
	Conversation ConversationConfig
	Telegram     TelegramConfig
	Journal      JournalConfig
	Context      ContextConfig
	Logger       LoggerConfig
	Migrations   MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
}

// AssistantConfig controls the orchestration loop and the inference endpoint.
type AssistantConfig struct {
	BaseURL        string
	Model          string
	MaxIterations  int
	RequestTimeout time.Duration
}

type ConversationConfig struct {
	LockTTL    time.Duration
	HistoryTTL time.Duration
	MaxHistory int
}

type TelegramConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

type JournalConfig struct {
	Path           string
	RetentionHours int
	SweepInterval  time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "lifedesk-backend"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "lifedesk_db"),
			User:            getString("DB_USER", "lifedesk_user"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getString("JWT_ISSUER", "lifedesk-backend"),
		},
		Assistant: AssistantConfig{
			BaseURL:        getString("ASSISTANT_BASE_URL", "https://api.openai.com/v1"),
			Model:          getString("ASSISTANT_MODEL", "gpt-4o-mini"),
			MaxIterations:  getInt("ASSISTANT_MAX_ITERATIONS", 10),
			RequestTimeout: getDuration("ASSISTANT_REQUEST_TIMEOUT", 60*time.Second),
		},
		Conversation: ConversationConfig{
			LockTTL:    getDuration("CONVERSATION_LOCK_TTL", 2*time.Minute),
			HistoryTTL: getDuration("CONVERSATION_HISTORY_TTL", 24*time.Hour),
			MaxHistory: getInt("CONVERSATION_MAX_HISTORY", 20),
		},
		Telegram: TelegramConfig{
			Token:   os.Getenv("TELEGRAM_BOT_TOKEN"),
			BaseURL: getString("TELEGRAM_API_URL", "https://api.telegram.org"),
			Timeout: getDuration("TELEGRAM_TIMEOUT", 15*time.Second),
		},
		Journal: JournalConfig{
			Path:           getString("JOURNAL_PATH", "./data/journal.db"),
			RetentionHours: getInt("JOURNAL_RETENTION_HOURS", 720),
			SweepInterval:  getDuration("JOURNAL_SWEEP_INTERVAL", time.Hour),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 120*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
