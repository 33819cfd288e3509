package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	GraphHopper GraphHopperConfig
	RouteCache  RouteCacheConfig
	Circular    CircularConfig
	Log         LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type GraphHopperConfig struct {
	BaseURL         string
	RequestTimeout  int // seconds
	MaxAlternatives int
}

type RouteCacheConfig struct {
	RouteTTL  time.Duration
	QueueSize int
}

type CircularConfig struct {
	DistanceWindowRatio float64
	MaxAttempts         int
	TargetCandidates    int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		GraphHopper: GraphHopperConfig{
			BaseURL:         viper.GetString("GRAPHHOPPER_BASE_URL"),
			RequestTimeout:  viper.GetInt("GRAPHHOPPER_REQUEST_TIMEOUT"),
			MaxAlternatives: viper.GetInt("GRAPHHOPPER_MAX_ALTERNATIVES"),
		},
		RouteCache: RouteCacheConfig{
			RouteTTL:  time.Duration(viper.GetInt("ROUTE_CACHE_TTL")) * time.Second,
			QueueSize: viper.GetInt("ROUTE_CACHE_QUEUE_SIZE"),
		},
		Circular: CircularConfig{
			DistanceWindowRatio: viper.GetFloat64("CIRCULAR_DISTANCE_WINDOW_RATIO"),
			MaxAttempts:         viper.GetInt("CIRCULAR_MAX_ATTEMPTS"),
			TargetCandidates:    viper.GetInt("CIRCULAR_TARGET_CANDIDATES"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.GraphHopper.RequestTimeout == 0 {
		cfg.GraphHopper.RequestTimeout = 30
	}
	if cfg.GraphHopper.MaxAlternatives == 0 {
		cfg.GraphHopper.MaxAlternatives = 3
	}
	if cfg.RouteCache.RouteTTL == 0 {
		cfg.RouteCache.RouteTTL = 180 * time.Second
	}
	if cfg.RouteCache.QueueSize == 0 {
		cfg.RouteCache.QueueSize = 64
	}
	if cfg.Circular.DistanceWindowRatio == 0 {
		cfg.Circular.DistanceWindowRatio = 0.1
	}
	if cfg.Circular.MaxAttempts == 0 {
		cfg.Circular.MaxAttempts = 10
	}
	if cfg.Circular.TargetCandidates == 0 {
		cfg.Circular.TargetCandidates = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
