package config

import "time"

// Config is the whole application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Mail    MailConfig    `mapstructure:"mail"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// RedisConfig is optional. An empty address disables the queue and the cache.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CORSConfig struct {
	// AllowedOrigins is either "*" or a comma separated list of origins.
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// AllowsAny reports whether every origin is accepted.
func (c CORSConfig) AllowsAny() bool {
	return c.AllowedOrigins == "" || c.AllowedOrigins == "*"
}

type MailConfig struct {
	Provider  string `mapstructure:"provider"` // smtp | ses | log
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

type StorageConfig struct {
	Provider      string `mapstructure:"provider"` // s3 | local
	Bucket        string `mapstructure:"bucket"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	LocalDir      string `mapstructure:"local_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CacheConfig struct {
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"`
}
