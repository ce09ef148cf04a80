package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Sync     SyncConfig
	Logging  LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database specific configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AuthConfig holds authentication specific configuration
type AuthConfig struct {
	JWTSecret           string
	AccessTokenDuration time.Duration
	ServiceKey          string
}

// KafkaConfig holds the intent-topic transport configuration
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	IntentTopic string
	GroupID     string
}

// RedisConfig holds the unread-count cache configuration
type RedisConfig struct {
	Enabled        bool
	URL            string
	Password       string
	DB             int
	UnreadCountTTL time.Duration
}

// SyncConfig holds the client polling intervals
type SyncConfig struct {
	FeedInterval   time.Duration
	ThreadInterval time.Duration
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Database defaults
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Auth defaults
	v.SetDefault("auth.accessTokenDuration", "15m")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.intentTopic", "notification-intents")
	v.SetDefault("kafka.groupID", "notification-service")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.unreadCountTTL", "60s")

	// Sync defaults: the notification feed refreshes every 30s, message
	// threads every 5s.
	v.SetDefault("sync.feedInterval", "30s")
	v.SetDefault("sync.threadInterval", "5s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
