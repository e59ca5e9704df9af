// Package config loads application configuration.
// TOML is the primary format; a .yaml/.yml file is accepted as well.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ecotech_server/pkg/constants"
)

// MainConfig holds basic application settings.
type MainConfig struct {
	AppName string `toml:"appName" yaml:"appName"` // used in page titles and logs
	Host    string `toml:"host" yaml:"host"`       // listen address, e.g. "0.0.0.0"
	Port    int    `toml:"port" yaml:"port"`       // listen port, e.g. 5000
	Mode    string `toml:"mode" yaml:"mode"`       // "dev" or "release"
}

// DatabaseConfig selects the gorm driver and its connection.
// DSN wins over the discrete fields when set.
type DatabaseConfig struct {
	Driver       string `toml:"driver" yaml:"driver"` // mysql | postgres | sqlite
	DSN          string `toml:"dsn" yaml:"dsn"`
	Host         string `toml:"host" yaml:"host"`
	Port         int    `toml:"port" yaml:"port"`
	User         string `toml:"user" yaml:"user"`
	Password     string `toml:"password" yaml:"password"`
	DatabaseName string `toml:"databaseName" yaml:"databaseName"`
}

// SessionConfig controls the admin session cookie.
type SessionConfig struct {
	Secret       string `toml:"secret" yaml:"secret"`             // signs session and flash cookies
	Store        string `toml:"store" yaml:"store"`               // memory | redis
	RememberDays int    `toml:"rememberDays" yaml:"rememberDays"` // remembered login lifetime
	Secure       bool   `toml:"secure" yaml:"secure"`             // mark cookies Secure (HTTPS only)
	CSRF         bool   `toml:"csrf" yaml:"csrf"`                 // enable gorilla/csrf protection
}

// RedisConfig is used when SessionConfig.Store is "redis".
type RedisConfig struct {
	Host     string `toml:"host" yaml:"host"`
	Port     int    `toml:"port" yaml:"port"`
	Password string `toml:"password" yaml:"password"`
	Db       int    `toml:"db" yaml:"db"`
}

// StorageConfig selects where resumes are kept.
type StorageConfig struct {
	Backend          string `toml:"backend" yaml:"backend"`     // local | s3
	UploadDir        string `toml:"uploadDir" yaml:"uploadDir"` // local backend root
	MaxContentLength int64  `toml:"maxContentLength" yaml:"maxContentLength"`
	S3Endpoint       string `toml:"s3Endpoint" yaml:"s3Endpoint"`
	S3AccessKey      string `toml:"s3AccessKey" yaml:"s3AccessKey"`
	S3SecretKey      string `toml:"s3SecretKey" yaml:"s3SecretKey"`
	S3Bucket         string `toml:"s3Bucket" yaml:"s3Bucket"`
	S3Region         string `toml:"s3Region" yaml:"s3Region"`
	S3UseSSL         bool   `toml:"s3UseSSL" yaml:"s3UseSSL"`
}

// LogConfig configures zap and lumberjack rotation.
type LogConfig struct {
	LogPath    string `toml:"logPath" yaml:"logPath"`
	FileName   string `toml:"fileName" yaml:"fileName"`
	MaxSize    int    `toml:"maxSize" yaml:"maxSize"`       // MB per file
	MaxBackups int    `toml:"maxBackups" yaml:"maxBackups"` // rotated files kept
	MaxAge     int    `toml:"maxAge" yaml:"maxAge"`         // days kept
	Level      string `toml:"level" yaml:"level"`           // debug, info, warn, error
}

// AdminConfig is the account seeded when the admins table is empty.
type AdminConfig struct {
	Username string `toml:"username" yaml:"username"`
	Email    string `toml:"email" yaml:"email"`
	Password string `toml:"password" yaml:"password"`
}

// CorsConfig lists origins allowed to call the JSON chart endpoint.
type CorsConfig struct {
	AllowOrigins []string `toml:"allowOrigins" yaml:"allowOrigins"`
}

// Config aggregates every section.
type Config struct {
	MainConfig     `toml:"mainConfig" yaml:"mainConfig"`
	DatabaseConfig `toml:"databaseConfig" yaml:"databaseConfig"`
	SessionConfig  `toml:"sessionConfig" yaml:"sessionConfig"`
	RedisConfig    `toml:"redisConfig" yaml:"redisConfig"`
	StorageConfig  `toml:"storageConfig" yaml:"storageConfig"`
	LogConfig      `toml:"logConfig" yaml:"logConfig"`
	AdminConfig    `toml:"adminConfig" yaml:"adminConfig"`
	CorsConfig     `toml:"corsConfig" yaml:"corsConfig"`
}

// DefaultSecret is the development signing key; a warning is logged when it is in use.
const DefaultSecret = "ecotech-dev-key-change-in-production"

// candidatePaths are tried in order when no explicit path is given.
var candidatePaths = []string{
	"configs/config_local.toml",
	"configs/config.toml",
	"../../configs/config_local.toml",
	"../../configs/config.toml",
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := new(Config)
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file at path, or the first candidate path that exists when path is empty.
// A missing file is not an error when path is empty: defaults and env overrides still apply.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	} else {
		for _, p := range candidatePaths {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := decodeFile(p, cfg); err != nil {
				return nil, err
			}
			break
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseConfig.DSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.SessionConfig.Secret = v
	}
	if v := os.Getenv("UPLOAD_FOLDER"); v != "" {
		c.StorageConfig.UploadDir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.RedisConfig.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.RedisConfig.Port = p
			}
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.MainConfig.Port = p
		}
	}
}

func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "EcoTech Services"
	}
	if c.MainConfig.Host == "" {
		c.MainConfig.Host = "0.0.0.0"
	}
	if c.MainConfig.Port == 0 {
		c.MainConfig.Port = 5000
	}
	if c.Mode == "" {
		c.Mode = "dev"
	}
	if c.Driver == "" {
		c.Driver = "mysql"
	}
	if c.SessionConfig.Secret == "" {
		c.SessionConfig.Secret = DefaultSecret
	}
	if c.SessionConfig.Store == "" {
		c.SessionConfig.Store = "memory"
	}
	if c.RememberDays == 0 {
		c.RememberDays = constants.REMEMBER_DAYS
	}
	if c.RedisConfig.Host == "" {
		c.RedisConfig.Host = "127.0.0.1"
	}
	if c.RedisConfig.Port == 0 {
		c.RedisConfig.Port = 6379
	}
	if c.Backend == "" {
		c.Backend = "local"
	}
	if c.UploadDir == "" {
		c.UploadDir = "static/uploads"
	}
	if c.MaxContentLength == 0 {
		c.MaxContentLength = constants.MAX_CONTENT_LENGTH
	}
	if c.LogPath == "" {
		c.LogPath = "logs"
	}
	if c.AdminConfig.Username == "" {
		c.AdminConfig.Username = "admin"
	}
	if c.AdminConfig.Email == "" {
		c.AdminConfig.Email = "admin@ecotechservices.com"
	}
	if c.AdminConfig.Password == "" {
		c.AdminConfig.Password = "admin123"
	}
}

// Addr is the listen address derived from MainConfig.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.MainConfig.Host, c.MainConfig.Port)
}

// RedisAddr is "host:port" for the redis client.
func (c *Config) RedisAddr() string {
	return c.RedisConfig.Host + ":" + strconv.Itoa(c.RedisConfig.Port)
}
