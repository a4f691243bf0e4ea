package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	Otp      OtpConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	// Addrs: список адресов Redis (хост:порт). Если пуст, используется Addr.
	Addrs []string `mapstructure:"addrs"`
	Addr  string   `mapstructure:"addr"`

	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// EmailConfig содержит настройки отправки почты.
// Provider: "resend", "smtp" или "noop" (для разработки).
type EmailConfig struct {
	Provider string `mapstructure:"provider"`
	From     string `mapstructure:"from"`

	// Resend
	ResendAPIKey string `mapstructure:"resend_api_key"`

	// SMTP (gomail)
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`

	// SiteURL используется для ссылок в письмах-уведомлениях
	SiteURL string `mapstructure:"site_url"`
}

// OtpConfig содержит настройки одноразовых кодов
type OtpConfig struct {
	// PendingTTLMinutes — время жизни pending-сессии верификации в Redis.
	// Должно быть не меньше TTL самого кода (10 минут).
	PendingTTLMinutes int `mapstructure:"pending_ttl_minutes"`
}

// PendingTTL возвращает TTL pending-сессии как Duration
func (o *OtpConfig) PendingTTL() time.Duration {
	minutes := o.PendingTTLMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// Привязываем переменные окружения явно
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("email.provider", "EMAIL_PROVIDER")
	vip.BindEnv("email.from", "EMAIL_FROM")
	vip.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	vip.BindEnv("email.smtp_host", "SMTP_HOST")
	vip.BindEnv("email.smtp_port", "SMTP_PORT")
	vip.BindEnv("email.smtp_user", "SMTP_USER")
	vip.BindEnv("email.smtp_password", "SMTP_PASSWORD")
	vip.BindEnv("email.site_url", "SITE_URL")

	vip.BindEnv("otp.pending_ttl_minutes", "OTP_PENDING_TTL_MINUTES")

	vip.BindEnv("server.port", "SERVER_PORT")

	// Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("jwt.expirationHrs", 24)
	vip.SetDefault("email.provider", "noop")
	vip.SetDefault("otp.pending_ttl_minutes", 15)

	// Файл конфигурации опционален: env-переменных достаточно
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются env-переменные", configPath)
			} else {
				log.Printf("[Config] Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Проверка обязательных параметров
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required (check JWT_SECRET env var)")
	}
	switch cfg.Email.Provider {
	case "resend":
		if cfg.Email.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend api key is required for email provider 'resend' (check RESEND_API_KEY env var)")
		}
	case "smtp":
		if cfg.Email.SMTPHost == "" || cfg.Email.SMTPPort == 0 {
			return nil, fmt.Errorf("smtp host and port are required for email provider 'smtp' (check SMTP_HOST, SMTP_PORT env vars)")
		}
	case "noop":
		// Режим разработки: письма только логируются
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Email.Provider)
	}

	return &cfg, nil
}
