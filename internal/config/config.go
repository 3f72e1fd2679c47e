package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置，全部来自环境变量 (可由 .env 提供)
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Storage  StorageConfig
	Session  SessionConfig
	Mail     MailConfig
	Admin    AdminConfig
	Log      LogConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port            string
	Mode            string // gin 模式: debug | release | test
	ShutdownTimeout time.Duration
	Swagger         bool
}

type StoreConfig struct {
	Driver  string // file | sqlite | postgres
	DataDir string
	DSN     string
}

type StorageConfig struct {
	Provider  string // local | s3
	UploadDir string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	CDNDomain string
	BasePath  string
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
	SweepSpec    string
}

type MailConfig struct {
	Driver   string // log | http | smtp
	From     string
	Endpoint string
	APIKey   string
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	Timeout  time.Duration
	Proxy    string
	Workers  int
}

type AdminConfig struct {
	Username string
	Password string
	Email    string
}

type LogConfig struct {
	Level  string
	Format string // console | json
}

type SecurityConfig struct {
	LoginRatePerMinute int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("SWAGGER_ENABLED", true)

	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("DATABASE_DSN", "")

	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("AWS_BUCKET", "")
	v.SetDefault("AWS_REGION", "ap-southeast-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_ENDPOINT", "")
	v.SetDefault("AWS_CDN_DOMAIN", "")
	v.SetDefault("STORAGE_BASE_PATH", "products")

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_NAME", "foodshop.sid")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_SWEEP_SPEC", "0 0/10 * * * *")

	v.SetDefault("MAIL_DRIVER", "log")
	v.SetDefault("MAIL_FROM", "Food Shop <no-reply@foodshop.com>")
	v.SetDefault("MAIL_ENDPOINT", "")
	v.SetDefault("MAIL_API_KEY", "")
	v.SetDefault("MAIL_SMTP_HOST", "")
	v.SetDefault("MAIL_SMTP_PORT", 587)
	v.SetDefault("MAIL_USERNAME", "")
	v.SetDefault("MAIL_PASSWORD", "")
	v.SetDefault("MAIL_TIMEOUT", "30s")
	v.SetDefault("MAIL_PROXY", "")
	v.SetDefault("NOTIFY_WORKERS", 4)

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_EMAIL", "admin@foodshop.com")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
}

// Load 先加载 .env (可选)，再读取环境变量
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// 已存在的环境变量优先，不会被 .env 覆盖
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("加载 %s 失败: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Mode:            v.GetString("GIN_MODE"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			Swagger:         v.GetBool("SWAGGER_ENABLED"),
		},
		Store: StoreConfig{
			Driver:  strings.ToLower(v.GetString("STORE_DRIVER")),
			DataDir: v.GetString("DATA_DIR"),
			DSN:     v.GetString("DATABASE_DSN"),
		},
		Storage: StorageConfig{
			Provider:  strings.ToLower(v.GetString("STORAGE_PROVIDER")),
			UploadDir: v.GetString("UPLOAD_DIR"),
			Bucket:    v.GetString("AWS_BUCKET"),
			Region:    v.GetString("AWS_REGION"),
			AccessKey: v.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			Endpoint:  v.GetString("AWS_ENDPOINT"),
			CDNDomain: v.GetString("AWS_CDN_DOMAIN"),
			BasePath:  v.GetString("STORAGE_BASE_PATH"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			TTL:          v.GetDuration("SESSION_TTL"),
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
			SweepSpec:    v.GetString("SESSION_SWEEP_SPEC"),
		},
		Mail: MailConfig{
			Driver:   strings.ToLower(v.GetString("MAIL_DRIVER")),
			From:     v.GetString("MAIL_FROM"),
			Endpoint: v.GetString("MAIL_ENDPOINT"),
			APIKey:   v.GetString("MAIL_API_KEY"),
			SMTPHost: v.GetString("MAIL_SMTP_HOST"),
			SMTPPort: v.GetInt("MAIL_SMTP_PORT"),
			Username: v.GetString("MAIL_USERNAME"),
			Password: v.GetString("MAIL_PASSWORD"),
			Timeout:  v.GetDuration("MAIL_TIMEOUT"),
			Proxy:    v.GetString("MAIL_PROXY"),
			Workers:  v.GetInt("NOTIFY_WORKERS"),
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
			Email:    v.GetString("ADMIN_EMAIL"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Security: SecurityConfig{
			LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验取值范围
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "file", "sqlite", "postgres":
	default:
		return fmt.Errorf("不支持的 STORE_DRIVER: %s", c.Store.Driver)
	}
	if c.Store.Driver == "postgres" && c.Store.DSN == "" {
		return errors.New("STORE_DRIVER=postgres 时必须设置 DATABASE_DSN")
	}

	switch c.Storage.Provider {
	case "local", "s3":
	default:
		return fmt.Errorf("不支持的 STORAGE_PROVIDER: %s", c.Storage.Provider)
	}
	if c.Storage.Provider == "s3" && c.Storage.Bucket == "" {
		return errors.New("STORAGE_PROVIDER=s3 时必须设置 AWS_BUCKET")
	}

	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL 必须大于 0")
	}
	return nil
}

// SQLiteDSN sqlite 未指定 DSN 时放在数据目录下
func (c *Config) SQLiteDSN() string {
	if c.Store.DSN != "" {
		return c.Store.DSN
	}
	return strings.TrimSuffix(c.Store.DataDir, "/") + "/foodshop.db"
}
