package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, перекрывающих значения из файла:
// VENUEBOOK_DATABASE_DRIVER, VENUEBOOK_AUTH_JWT_SECRET и т.д.
const EnvPrefix = "VENUEBOOK"

// DefaultEnvFile файл с переменными окружения для локальной разработки
const DefaultEnvFile = ".env"

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server" split_words:"true"`
	Database     DatabaseConfig     `toml:"database" split_words:"true"`
	Logs         LogsConfig         `toml:"logs" split_words:"true"`
	Metrics      MetricsConfig      `toml:"metrics" split_words:"true"`
	Tracing      TracingConfig      `toml:"tracing" split_words:"true"`
	Auth         AuthConfig         `toml:"auth" split_words:"true"`
	Booking      BookingConfig      `toml:"booking" split_words:"true"`
	Catalog      CatalogConfig      `toml:"catalog" split_words:"true"`
	Payment      PaymentConfig      `toml:"payment" split_words:"true"`
	Notification NotificationConfig `toml:"notification" split_words:"true"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	BasePath        string `toml:"base_path" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки хранилища
// Driver: postgres (production) или sqlite (локальный запуск и тесты)
type DatabaseConfig struct {
	Driver          string `toml:"driver" split_words:"true"`
	Host            string `toml:"host" split_words:"true"`
	Port            int `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	Path            string `toml:"path" split_words:"true"`
	MaxOpenConns    int `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int `toml:"conn_max_lifetime" split_words:"true"`
	AutoMigrate     bool   `toml:"auto_migrate" split_words:"true"`
}

// DSN строка подключения для выбранного драйвера
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		// busy_timeout нужен, чтобы конкурирующие записи ждали блокировку, а не падали сразу
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", c.Path)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// Поддерживаемые драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Провайдеры оплаты и способы доставки уведомлений
const (
	PaymentOffline = "offline"
	PaymentOmise   = "omise"

	NotificationLog  = "log"
	NotificationAMQP = "amqp"
)

type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
}

type TracingConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Endpoint    string `toml:"endpoint" split_words:"true"`
	Environment string `toml:"environment" split_words:"true"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret" split_words:"true"`
	Issuer          string `toml:"issuer" split_words:"true"`
	TokenTTLMinutes int `toml:"token_ttl_minutes" split_words:"true"`
}

// BookingConfig глобальные правила бронирования
// Правила площадки (таблица booking_rules) перекрывают их
type BookingConfig struct {
	SlotMinutes       int `toml:"slot_minutes" split_words:"true"`
	MaxAdvanceDays    int `toml:"max_advance_days" split_words:"true"` // 0 = без ограничения
	MinNoticeMinutes  int `toml:"min_notice_minutes" split_words:"true"`
	CancelCutoffHours int `toml:"cancel_cutoff_hours" split_words:"true"`
	BucketMinutes     int `toml:"bucket_minutes" split_words:"true"`
	NotifyTimeout     int `toml:"notify_timeout" split_words:"true"`
}

// CancelCutoff окно до начала, в течение которого отмена запрещена
func (c BookingConfig) CancelCutoff() time.Duration {
	return time.Duration(c.CancelCutoffHours) * time.Hour
}

type CatalogConfig struct {
	URL     string `toml:"url" split_words:"true"`
	Timeout int `toml:"timeout" split_words:"true"`
}

// PaymentConfig Provider: offline (без списаний) или omise
type PaymentConfig struct {
	Provider       string `toml:"provider" split_words:"true"`
	OmisePublicKey string `toml:"omise_public_key" split_words:"true"`
	OmiseSecretKey string `toml:"omise_secret_key" split_words:"true"`
}

// NotificationConfig Driver: log (только в лог) или amqp
type NotificationConfig struct {
	Driver   string `toml:"driver" split_words:"true"`
	AMQPURL  string `toml:"amqp_url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			Path:            "venuebook.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "venuebook",
			Path:        "/metrics",
		},
		Tracing: TracingConfig{
			Endpoint:    "localhost:4317",
			Environment: "dev",
		},
		Auth: AuthConfig{
			Issuer:          "venuebook",
			TokenTTLMinutes: 60,
		},
		Booking: BookingConfig{
			SlotMinutes:       60,
			MaxAdvanceDays:    30,
			CancelCutoffHours: 24,
			BucketMinutes:     5,
			NotifyTimeout:     5,
		},
		Catalog: CatalogConfig{
			Timeout: 5,
		},
		Payment: PaymentConfig{
			Provider: PaymentOffline,
		},
		Notification: NotificationConfig{
			Driver:   NotificationLog,
			Exchange: "venuebook.events",
		},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем TOML файл,
// затем .env (если есть), затем переменные окружения VENUEBOOK_*
func Load(path string) (*Config, error) {
	return LoadWithEnvFile(path, DefaultEnvFile)
}

// LoadWithEnvFile как Load, но с явным путем к .env файлу
func LoadWithEnvFile(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("config: database.host and database.dbname are required for postgres")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("config: database.path is required for sqlite")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	if c.Booking.SlotMinutes <= 0 || c.Booking.SlotMinutes > 24*60 {
		return fmt.Errorf("config: invalid booking.slot_minutes %d", c.Booking.SlotMinutes)
	}
	if c.Booking.BucketMinutes <= 0 || c.Booking.SlotMinutes%c.Booking.BucketMinutes != 0 {
		return fmt.Errorf("config: booking.bucket_minutes %d must divide slot_minutes %d",
			c.Booking.BucketMinutes, c.Booking.SlotMinutes)
	}
	if c.Booking.CancelCutoffHours < 0 || c.Booking.MaxAdvanceDays < 0 || c.Booking.MinNoticeMinutes < 0 {
		return errors.New("config: booking limits must not be negative")
	}
	if c.Catalog.URL == "" {
		return errors.New("config: catalog.url is required")
	}
	switch c.Payment.Provider {
	case PaymentOffline:
	case PaymentOmise:
		if c.Payment.OmisePublicKey == "" || c.Payment.OmiseSecretKey == "" {
			return errors.New("config: omise keys are required for payment.provider=omise")
		}
	default:
		return fmt.Errorf("config: unknown payment.provider %q", c.Payment.Provider)
	}
	switch c.Notification.Driver {
	case NotificationLog:
	case NotificationAMQP:
		if c.Notification.AMQPURL == "" {
			return errors.New("config: notification.amqp_url is required for notification.driver=amqp")
		}
	default:
		return fmt.Errorf("config: unknown notification.driver %q", c.Notification.Driver)
	}
	return nil
}
