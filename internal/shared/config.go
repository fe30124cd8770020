package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	HTTPTimeout time.Duration
	MetricsAddr string

	CatalogSource string // seed|mysql
	MySQLDSN      string

	RedisAddr string
	RedisDB   int
	RedisPass string

	AIBaseURL     string
	AIModel       string
	AIKey         string
	AIRPS         int
	RetryAttempts int
	RetryUnit     time.Duration

	CacheTTL       time.Duration
	CacheCapacity  int
	SessionIdleTTL time.Duration
	PageSize       int
	SeedWorkers    int
}

// fileConfig mirrors the optional YAML file named by CONFIG_FILE.
// Secrets are never read from it.
type fileConfig struct {
	App struct {
		Env         string `yaml:"env"`
		LogLevel    string `yaml:"log_level"`
		HTTPAddr    string `yaml:"http_addr"`
		MetricsAddr string `yaml:"metrics_addr"`
		PageSize    int    `yaml:"page_size"`
	} `yaml:"app"`
	Catalog struct {
		Source   string `yaml:"source"`
		MySQLDSN string `yaml:"mysql_dsn"`
	} `yaml:"catalog"`
	Redis struct {
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`
	AI struct {
		BaseURL       string `yaml:"base_url"`
		Model         string `yaml:"model"`
		RPS           int    `yaml:"rps"`
		RetryAttempts int    `yaml:"retry_attempts"`
		RetryUnitMS   int    `yaml:"retry_unit_ms"`
	} `yaml:"ai"`
	Sessions struct {
		IdleTTLSeconds  int `yaml:"idle_ttl_seconds"`
		CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
		CacheCapacity   int `yaml:"cache_capacity"`
	} `yaml:"sessions"`
}

func defaults() Config {
	return Config{
		AppEnv:         "prod",
		LogLevel:       "info",
		HTTPAddr:       ":8080",
		HTTPTimeout:    90 * time.Second,
		MetricsAddr:    "",
		CatalogSource:  "seed",
		MySQLDSN:       "root:root@tcp(localhost:3306)/adlab?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		AIBaseURL:      "https://generativelanguage.googleapis.com/v1beta",
		AIModel:        "gemini-1.5-flash",
		AIRPS:          2,
		RetryAttempts:  3,
		RetryUnit:      time.Second,
		CacheTTL:       15 * time.Minute,
		CacheCapacity:  1024,
		SessionIdleTTL: 30 * time.Minute,
		PageSize:       2,
		SeedWorkers:    4,
	}
}

// Load resolves configuration in priority order: defaults -> CONFIG_FILE -> .env -> environment.
// A missing .env or config file is fine; a config file that does not parse is not.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env could not be read")
	}

	c := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := c.applyFile(raw); err != nil {
			return Config{}, err
		}
	}
	c.applyEnv()

	if c.AIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty; recommendations will fail as upstream unavailable")
	}
	return c, nil
}

func (c *Config) applyFile(raw []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	setStr(&c.AppEnv, f.App.Env)
	setStr(&c.LogLevel, f.App.LogLevel)
	setStr(&c.HTTPAddr, f.App.HTTPAddr)
	setStr(&c.MetricsAddr, f.App.MetricsAddr)
	setInt(&c.PageSize, f.App.PageSize)
	setStr(&c.CatalogSource, f.Catalog.Source)
	setStr(&c.MySQLDSN, f.Catalog.MySQLDSN)
	setStr(&c.RedisAddr, f.Redis.Addr)
	setInt(&c.RedisDB, f.Redis.DB)
	setStr(&c.AIBaseURL, f.AI.BaseURL)
	setStr(&c.AIModel, f.AI.Model)
	setInt(&c.AIRPS, f.AI.RPS)
	setInt(&c.RetryAttempts, f.AI.RetryAttempts)
	if f.AI.RetryUnitMS > 0 {
		c.RetryUnit = time.Duration(f.AI.RetryUnitMS) * time.Millisecond
	}
	if f.Sessions.IdleTTLSeconds > 0 {
		c.SessionIdleTTL = time.Duration(f.Sessions.IdleTTLSeconds) * time.Second
	}
	if f.Sessions.CacheTTLSeconds > 0 {
		c.CacheTTL = time.Duration(f.Sessions.CacheTTLSeconds) * time.Second
	}
	setInt(&c.CacheCapacity, f.Sessions.CacheCapacity)
	return nil
}

func (c *Config) applyEnv() {
	c.AppEnv = env("APP_ENV", c.AppEnv)
	c.LogLevel = env("LOG_LEVEL", c.LogLevel)
	c.HTTPAddr = env("HTTP_ADDR", c.HTTPAddr)
	c.HTTPTimeout = time.Duration(atoi("HTTP_TIMEOUT_SECONDS", int(c.HTTPTimeout.Seconds()))) * time.Second
	c.MetricsAddr = env("METRICS_ADDR", c.MetricsAddr)
	c.CatalogSource = env("CATALOG_SOURCE", c.CatalogSource)
	c.MySQLDSN = env("MYSQL_DSN", c.MySQLDSN)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisPass = env("REDIS_PASSWORD", c.RedisPass)
	c.RedisDB = atoi("REDIS_DB", c.RedisDB)
	c.AIBaseURL = env("GEMINI_BASE_URL", c.AIBaseURL)
	c.AIModel = env("GEMINI_MODEL", c.AIModel)
	c.AIKey = env("GEMINI_API_KEY", c.AIKey)
	c.AIRPS = atoi("GEMINI_RPS", c.AIRPS)
	c.RetryAttempts = atoi("AI_RETRY_ATTEMPTS", c.RetryAttempts)
	c.RetryUnit = time.Duration(atoi("AI_RETRY_UNIT_MS", int(c.RetryUnit.Milliseconds()))) * time.Millisecond
	c.CacheTTL = time.Duration(atoi("CACHE_TTL_SECONDS", int(c.CacheTTL.Seconds()))) * time.Second
	c.CacheCapacity = atoi("CACHE_CAPACITY", c.CacheCapacity)
	c.SessionIdleTTL = time.Duration(atoi("SESSION_IDLE_SECONDS", int(c.SessionIdleTTL.Seconds()))) * time.Second
	c.PageSize = atoi("PAGE_SIZE", c.PageSize)
	c.SeedWorkers = atoi("SEED_WORKERS", c.SeedWorkers)
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
