package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	// Driver is one of postgres, mongo or memory.
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Migrate  bool   `mapstructure:"migrate"`
}

// DSN returns the lib/pq connection string. The password is omitted when
// safe is true so the result can be logged.
func (c DatabaseConfig) DSN(safe bool) string {
	password := c.Password
	if safe {
		password = "****"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, password, c.Name, c.SSLMode)
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PostsTTL time.Duration `mapstructure:"posts_ttl"`
}

type KafkaConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Brokers    []string `mapstructure:"brokers"`
	ActorTopic string   `mapstructure:"actor_topic"`
	PostTopic  string   `mapstructure:"post_topic"`
}

type JWTConfig struct {
	AccessSecret  string        `mapstructure:"access_secret"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	AccessTTL     time.Duration `mapstructure:"access_ttl"`
	RefreshTTL    time.Duration `mapstructure:"refresh_ttl"`
}

type CookieConfig struct {
	Secure bool `mapstructure:"secure"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Cookie   CookieConfig   `mapstructure:"cookie"`
	Log      LogConfig      `mapstructure:"log"`
}

var defaults = map[string]any{
	"server.port":             "8080",
	"server.read_timeout":     "10s",
	"server.write_timeout":    "10s",
	"server.shutdown_timeout": "5s",
	"storage.driver":          "postgres",
	"database.host":           "localhost",
	"database.port":           5432,
	"database.user":           "postgres",
	"database.password":       "",
	"database.name":           "blog",
	"database.sslmode":        "disable",
	"database.migrate":        true,
	"mongo.uri":               "mongodb://localhost:27017",
	"mongo.database":          "blog",
	"redis.enabled":           false,
	"redis.host":              "localhost",
	"redis.port":              "6379",
	"redis.password":          "",
	"redis.db":                0,
	"redis.posts_ttl":         "10m",
	"kafka.enabled":           false,
	"kafka.brokers":           []string{"localhost:9092"},
	"kafka.actor_topic":       "blog.actor.events",
	"kafka.post_topic":        "blog.post.events",
	"jwt.access_secret":       "",
	"jwt.refresh_secret":      "",
	"jwt.access_ttl":          "15m",
	"jwt.refresh_ttl":         "240h",
	"cookie.secure":           true,
	"log.level":               "info",
	"log.format":              "text",
}

// LoadConfig reads config.yml from path, then .env (if any), then BLOG_*
// environment variables, later sources overriding earlier ones.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return errors.New("jwt.access_secret and jwt.refresh_secret are required")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("jwt ttl values must be positive")
	}
	switch c.Storage.Driver {
	case "postgres", "mongo", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers is required when kafka is enabled")
	}
	return nil
}
