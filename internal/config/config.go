package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config application configuration loaded from yaml with env overrides
type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Versioning VersioningConfig `yaml:"versioning"`
}

// AppConfig server settings
type AppConfig struct {
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`
}

// DatabaseConfig MySQL connection settings
type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// GetDSN builds the MySQL DSN
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig Redis connection settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig token settings
type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

// VersioningConfig version graph engine settings
type VersioningConfig struct {
	MaxVersions     int `yaml:"max_versions"`      // soft cap per artifact
	PruneBatch      int `yaml:"prune_batch"`       // max versions removed per prune pass
	TreeCacheTTLSec int `yaml:"tree_cache_ttl_sec"`
}

// TreeCacheTTL returns the family tree cache TTL as a duration.
func (v VersioningConfig) TreeCacheTTL() time.Duration {
	return time.Duration(v.TreeCacheTTLSec) * time.Second
}

// Load reads the yaml config at path, then applies env var overrides.
// Missing file is not fatal: defaults + env are enough to run locally.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{Env: "local", Port: 8082},
		Database: DatabaseConfig{
			Host: "127.0.0.1", Port: 3306, User: "artloom", Name: "artloom",
			MaxOpenConns: 25, MaxIdleConns: 5,
		},
		Redis: RedisConfig{Host: "127.0.0.1", Port: 6379, PoolSize: 10},
		JWT:   JWTConfig{ExpiryHours: 24},
		Versioning: VersioningConfig{
			MaxVersions:     50,
			PruneBatch:      10,
			TreeCacheTTLSec: 120,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.App.Env, "APP_ENV")
	setInt(&cfg.App.Port, "APP_PORT")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
}

func applyDefaults(cfg *Config) {
	if cfg.Versioning.MaxVersions <= 0 {
		cfg.Versioning.MaxVersions = 50
	}
	if cfg.Versioning.PruneBatch <= 0 {
		cfg.Versioning.PruneBatch = 10
	}
	if cfg.Versioning.TreeCacheTTLSec <= 0 {
		cfg.Versioning.TreeCacheTTLSec = 120
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
