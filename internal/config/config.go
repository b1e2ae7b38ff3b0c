package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
	Push    PushConfig    `yaml:"push"`
	Backup  BackupConfig  `yaml:"backup"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `yaml:"port"             env:"MEMENTO_PORT"             env-default:"8080"`
	BaseURL         string        `yaml:"base_url"         env:"MEMENTO_BASE_URL"         env-default:"http://localhost:8080"`
	StaticDir       string        `yaml:"static_dir"       env:"MEMENTO_STATIC_DIR"       env-default:"web/dist"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"MEMENTO_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"MEMENTO_WRITE_TIMEOUT"    env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"MEMENTO_IDLE_TIMEOUT"     env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"MEMENTO_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// StorageConfig selects and configures the entity store backend.
// Backend "memory" keeps everything in process (development only, data lost
// on restart); "sqlite" is the durable default.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"MEMENTO_STORAGE_BACKEND" env-default:"sqlite"`
	DBPath  string `yaml:"db_path" env:"MEMENTO_DB_PATH"         env-default:"memento.db"`
}

// AuthConfig holds session settings.
type AuthConfig struct {
	SessionTTL time.Duration `yaml:"session_ttl" env:"MEMENTO_SESSION_TTL" env-default:"720h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"MEMENTO_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"MEMENTO_LOG_FORMAT" env-default:"text"`
}

// PushConfig holds web push (VAPID) settings. Push reminders are disabled
// when either key is empty.
type PushConfig struct {
	VAPIDPublicKey  string `yaml:"vapid_public_key"  env:"MEMENTO_VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `yaml:"vapid_private_key" env:"MEMENTO_VAPID_PRIVATE_KEY"`
	Subscriber      string `yaml:"subscriber"        env:"MEMENTO_PUSH_SUBSCRIBER" env-default:"mailto:noreply@memento.local"`
}

// BackupConfig holds S3-compatible backup settings. Backups are disabled
// when Bucket, AccessKey, or SecretKey is empty.
type BackupConfig struct {
	Endpoint   string `yaml:"endpoint"   env:"MEMENTO_BACKUP_S3_ENDPOINT"`
	Bucket     string `yaml:"bucket"     env:"MEMENTO_BACKUP_S3_BUCKET"`
	Region     string `yaml:"region"     env:"MEMENTO_BACKUP_S3_REGION" env-default:"auto"`
	AccessKey  string `yaml:"access_key" env:"MEMENTO_BACKUP_S3_ACCESS_KEY"`
	SecretKey  string `yaml:"secret_key" env:"MEMENTO_BACKUP_S3_SECRET_KEY"`
	Passphrase string `yaml:"passphrase" env:"MEMENTO_BACKUP_PASSPHRASE"`
	Keep       int    `yaml:"keep"       env:"MEMENTO_BACKUP_KEEP" env-default:"14"`
	Hour       int    `yaml:"hour"       env:"MEMENTO_BACKUP_HOUR" env-default:"3"`
}

// Load reads configuration from an optional YAML file and the environment.
// Priority: ENV > YAML > defaults. The file path comes from MEMENTO_CONFIG
// (fallback "./memento.yaml"); a missing fallback file is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("MEMENTO_CONFIG")
	explicit := path != ""
	if !explicit {
		path = "./memento.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("db_path is required for the sqlite backend")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	return nil
}
