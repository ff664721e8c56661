package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DataSourcePostgres = "postgres"
	DataSourceMemory   = "memory"
)

type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

type LogConfig struct {
	Level      string
	Format     string
	FluentHost string
	FluentPort int
}

// Config holds the whole service configuration.
type Config struct {
	AppName     string
	Port        string
	DataSource  string
	DatabaseURL string
	AutoMigrate bool
	FixturePath string

	RedisAddr string
	CacheTTL  time.Duration
	AMQP      AMQPConfig

	PageSize    int
	MaxPageSize int

	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string

	Log LogConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "listing-search")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATA_SOURCE", DataSourcePostgres)
	v.SetDefault("CACHE_TTL", "2m")
	v.SetDefault("AMQP_EXCHANGE", "cms_exchange")
	v.SetDefault("AMQP_QUEUE", "listing_search_cache_invalidation")
	v.SetDefault("PAGE_SIZE", 12)
	v.SetDefault("MAX_PAGE_SIZE", 48)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("FLUENT_PORT", 24224)
}

// Load reads the optional .env files (".env" when none are given) and then
// the process environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		AppName:     v.GetString("APP_NAME"),
		Port:        v.GetString("PORT"),
		DataSource:  strings.ToLower(v.GetString("DATA_SOURCE")),
		DatabaseURL: v.GetString("DATABASE_URL"),
		AutoMigrate: v.GetBool("AUTO_MIGRATE"),
		FixturePath: v.GetString("FIXTURE_PATH"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		CacheTTL:    v.GetDuration("CACHE_TTL"),
		AMQP: AMQPConfig{
			URL:      v.GetString("AMQP_URL"),
			Exchange: v.GetString("AMQP_EXCHANGE"),
			Queue:    v.GetString("AMQP_QUEUE"),
		},
		PageSize:       v.GetInt("PAGE_SIZE"),
		MaxPageSize:    v.GetInt("MAX_PAGE_SIZE"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Format:     v.GetString("LOG_FORMAT"),
			FluentHost: v.GetString("FLUENT_HOST"),
			FluentPort: v.GetInt("FLUENT_PORT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DataSource {
	case DataSourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATA_SOURCE=%s", DataSourcePostgres)
		}
	case DataSourceMemory:
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", c.DataSource)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.MaxPageSize < c.PageSize {
		return fmt.Errorf("MAX_PAGE_SIZE (%d) must not be below PAGE_SIZE (%d)", c.MaxPageSize, c.PageSize)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
