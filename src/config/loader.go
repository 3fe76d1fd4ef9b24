package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env, an optional config.yaml and the environment, in that
// order of increasing precedence.
func Load() (*Config, error) {
	loadEnvFile()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AddConfigPath("../..")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	registerKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// registerKeys makes every key visible to Unmarshal so that env-only
// values (MONGO_URI, SMTP_HOST ...) are picked up.
func registerKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.env",
		"mongo.uri", "mongo.database",
		"redis.address", "redis.password", "redis.db",
		"cors.allowed_origins",
		"mail.provider", "mail.from_email", "mail.from_name",
		"smtp.host", "smtp.port", "smtp.user", "smtp.pass",
		"aws.region",
		"storage.provider", "storage.bucket", "storage.public_base_url", "storage.local_dir",
		"log.level", "log.format",
		"cache.catalog_ttl",
	} {
		_ = v.BindEnv(key)
	}
	// Legacy names used by the old deployment.
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("redis.address", "REDIS_ADDRESS", "REDIS_URI")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS", "ALLOWED_ORIGINS")
}

func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "5001"
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "nextglide"
	}
	if cfg.CORS.AllowedOrigins == "" {
		cfg.CORS.AllowedOrigins = "*"
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "log"
	}
	if cfg.Mail.FromEmail == "" {
		cfg.Mail.FromEmail = "info@nextglidesolutions.com"
	}
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = "NextGlide Solutions"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "./uploads"
	}
	if cfg.Storage.PublicBaseURL == "" && cfg.Storage.Provider == "local" {
		cfg.Storage.PublicBaseURL = "/uploads"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Cache.CatalogTTL == 0 {
		cfg.Cache.CatalogTTL = 10 * time.Minute
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required (set MONGO_URI)")
	}
	switch cfg.Mail.Provider {
	case "smtp":
		if cfg.SMTP.Host == "" || cfg.SMTP.User == "" || cfg.SMTP.Pass == "" {
			return fmt.Errorf("smtp.host, smtp.user and smtp.pass are required for the smtp mail provider")
		}
	case "ses", "log":
	default:
		return fmt.Errorf("unknown mail.provider %q", cfg.Mail.Provider)
	}
	switch cfg.Storage.Provider {
	case "s3":
		if cfg.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 storage provider")
		}
	case "local":
	default:
		return fmt.Errorf("unknown storage.provider %q", cfg.Storage.Provider)
	}
	return nil
}
