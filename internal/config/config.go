package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         string `yaml:"port"`
	Storage      string `yaml:"storage"` // json | sqlite | redis
	DataDir      string `yaml:"data_dir"`
	DBDSN        string `yaml:"db_dsn"`
	RedisAddr    string `yaml:"redis_addr"`
	RedisPrefix  string `yaml:"redis_prefix"`
	AMQPURL      string `yaml:"amqp_url"`
	AMQPExchange string `yaml:"amqp_exchange"`
	AdminKeyHash string `yaml:"admin_key_hash"`
	RateLimit    int    `yaml:"rate_limit"`
	BodyLimit    int    `yaml:"body_limit"`
	LogFile      string `yaml:"log_file"`
	TemplatesDir string `yaml:"templates_dir"`
}

func Defaults() Config {
	return Config{
		Port:         "8080",
		Storage:      "json",
		DataDir:      "./data",
		DBDSN:        "storefront.db",
		RedisAddr:    "localhost:6379",
		RedisPrefix:  "storefront",
		AMQPExchange: "storefront.events",
		RateLimit:    120,
		BodyLimit:    1 << 20,
		TemplatesDir: "./web/templates",
	}
}

// Load resolves the config from CONFIG_FILE (if set) and then env vars.
// A broken config file is logged and ignored.
func Load() Config {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fromFile, err := LoadFile(path, cfg)
		if err != nil {
			log.Printf("[warn] could not read config file %s: %v", path, err)
		} else {
			cfg = fromFile
		}
	}
	cfg = applyEnv(cfg)
	log.Printf("[config] PORT=%s STORAGE=%s DATA_DIR=%s DB_DSN=%s REDIS_ADDR=%s EVENTS=%t ADMIN_GUARD=%t",
		cfg.Port, cfg.Storage, cfg.DataDir, cfg.DBDSN, cfg.RedisAddr, cfg.AMQPURL != "", cfg.AdminKeyHash != "")
	return cfg
}

// LoadFile overlays the YAML document at path on top of base.
func LoadFile(path string, base Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	cfg := base
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return base, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Storage = getEnv("STORAGE", cfg.Storage)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.DBDSN = getEnv("DB_DSN", cfg.DBDSN)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPrefix = getEnv("REDIS_PREFIX", cfg.RedisPrefix)
	cfg.AMQPURL = getEnv("AMQP_URL", cfg.AMQPURL)
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", cfg.AMQPExchange)
	cfg.AdminKeyHash = getEnv("ADMIN_KEY_HASH", cfg.AdminKeyHash)
	cfg.RateLimit = getEnvAsInt("RATE_LIMIT", cfg.RateLimit)
	cfg.BodyLimit = getEnvAsInt("BODY_LIMIT", cfg.BodyLimit)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.TemplatesDir = getEnv("TEMPLATES_DIR", cfg.TemplatesDir)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
