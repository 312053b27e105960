package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
	Payment   PaymentConfig
	Relay     RelayConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
}

type RedisConfig struct {
	// Empty disables Redis: the rate limiter falls back to memory and the relay to logging.
	URL string `envconfig:"REDIS_URL" default:""`
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
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
	FilePath       string `envconfig:"LOG_FILE_PATH" default:""`
	FileMaxSizeMB  int    `envconfig:"LOG_FILE_MAX_SIZE_MB" default:"100"`
	FileMaxBackups int    `envconfig:"LOG_FILE_MAX_BACKUPS" default:"5"`
	FileMaxAgeDays int    `envconfig:"LOG_FILE_MAX_AGE_DAYS" default:"28"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	// Issuer is matched against the iss claim when set.
	Issuer string        `envconfig:"JWT_ISSUER"`
	Leeway time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

type BookingConfig struct {
	FeeRateBasisPoints int           `envconfig:"BOOKING_FEE_RATE_BPS" default:"1000"`
	ReservationTimeout time.Duration `envconfig:"BOOKING_RESERVATION_TIMEOUT" default:"8s"`
	LockTimeout        time.Duration `envconfig:"BOOKING_LOCK_TIMEOUT" default:"5s"`
	ReleaseMaxAttempts int           `envconfig:"BOOKING_RELEASE_MAX_ATTEMPTS" default:"3"`
	ReleaseBackoff     time.Duration `envconfig:"BOOKING_RELEASE_BACKOFF" default:"200ms"`
}

type RateLimitConfig struct {
	// ulule/limiter formatted rate, e.g. "10-M" (10 per minute)
	CreateBooking string `envconfig:"RATE_LIMIT_CREATE_BOOKING" default:"10-M"`
}

type PaymentConfig struct {
	WebhookSecret string `envconfig:"PAYMENT_WEBHOOK_SECRET" default:""`
}

type RelayConfig struct {
	Enabled      bool          `envconfig:"RELAY_ENABLED" default:"true"`
	PollInterval time.Duration `envconfig:"RELAY_POLL_INTERVAL" default:"2s"`
	BatchSize    int           `envconfig:"RELAY_BATCH_SIZE" default:"50"`
	MaxAttempts  int           `envconfig:"RELAY_MAX_ATTEMPTS" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	switch cfg.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DB.User == "" || cfg.DB.Password == "" || cfg.DB.DBName == "" {
			return Config{}, fmt.Errorf("DB_USER, DB_PASSWORD and DB_NAME are required for the postgres driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Storage: StorageConfig{
			Driver: "postgres",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
			MinConns: 1,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Booking: BookingConfig{
			FeeRateBasisPoints: 1000,
			ReservationTimeout: 8 * time.Second,
			LockTimeout:        5 * time.Second,
			ReleaseMaxAttempts: 3,
			ReleaseBackoff:     10 * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			CreateBooking: "1000-M",
		},
		Payment: PaymentConfig{
			WebhookSecret: "test-webhook-secret",
		},
		Relay: RelayConfig{
			Enabled:      false,
			PollInterval: time.Second,
			BatchSize:    10,
			MaxAttempts:  3,
		},
	}
}
