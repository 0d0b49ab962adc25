package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"InvestScout/pkg/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Cache struct {
		TTL           time.Duration `yaml:"ttl"`
		MemoryMaxSize int           `yaml:"memory_max_size"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Providers struct {
		Timeout       time.Duration `yaml:"timeout"`
		RetryAttempts int           `yaml:"retry_attempts"`
		RetryDelay    time.Duration `yaml:"retry_delay"`
		Coingecko     struct {
			BaseURL string `yaml:"base_url"`
			APIKey  string `yaml:"api_key"`
			PerPage int    `yaml:"per_page"`
			Pages   int    `yaml:"pages"`
		} `yaml:"coingecko"`
		Coinpaprika struct {
			BaseURL string `yaml:"base_url"`
			Limit   int    `yaml:"limit"`
		} `yaml:"coinpaprika"`
		Stocks struct {
			Symbols    []string      `yaml:"symbols"`
			FetchDelay time.Duration `yaml:"fetch_delay"`
		} `yaml:"stocks"`
		Yahoo struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"yahoo"`
		Finnhub struct {
			Enabled bool   `yaml:"enabled"`
			BaseURL string `yaml:"base_url"`
			APIKey  string `yaml:"api_key"`
		} `yaml:"finnhub"`
	} `yaml:"providers"`
	Criteria struct {
		MinMarketCap float64 `yaml:"min_market_cap"`
		MinVolume24h float64 `yaml:"min_volume_24h"`
		MaxPrice     float64 `yaml:"max_price"`
		DailyBudget  float64 `yaml:"daily_budget"`
	} `yaml:"criteria"`
	Schedule struct {
		Enabled  bool     `yaml:"enabled"`
		Time     string   `yaml:"time"`
		Timezone string   `yaml:"timezone"`
		Classes  []string `yaml:"classes"`
	} `yaml:"schedule"`
	Delivery struct {
		Telegram struct {
			Enabled  bool   `yaml:"enabled"`
			BaseURL  string `yaml:"base_url"`
			BotToken string `yaml:"bot_token"`
			ChatID   string `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"delivery"`
	Queue struct {
		Enabled    bool          `yaml:"enabled"`
		Workers    int           `yaml:"workers"`
		RetryLimit int           `yaml:"retry_limit"`
		RetryDelay time.Duration `yaml:"retry_delay"`
	} `yaml:"queue"`
	Sinks struct {
		Kafka struct {
			Enabled      bool     `yaml:"enabled"`
			Brokers      []string `yaml:"brokers"`
			Topic        string   `yaml:"topic"`
			RequiredAcks int      `yaml:"required_acks"`
			Compression  string   `yaml:"compression"`
		} `yaml:"kafka"`
		ClickHouse struct {
			Enabled     bool          `yaml:"enabled"`
			Host        string        `yaml:"host"`
			Port        int           `yaml:"port"`
			Database    string        `yaml:"database"`
			User        string        `yaml:"user"`
			Password    string        `yaml:"password"`
			DialTimeout time.Duration `yaml:"dial_timeout"`
		} `yaml:"clickhouse"`
	} `yaml:"sinks"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Override with environment variables
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.Providers.Coingecko.APIKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Providers.Finnhub.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Delivery.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Delivery.Telegram.ChatID = v
	}
	if v := os.Getenv("STOCK_SYMBOLS"); v != "" {
		c.Providers.Stocks.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Sinks.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 15 * time.Minute
	}
	if c.Cache.MemoryMaxSize <= 0 {
		c.Cache.MemoryMaxSize = 1000
	}
	if c.Providers.Timeout <= 0 {
		c.Providers.Timeout = 20 * time.Second
	}
	if c.Providers.RetryAttempts <= 0 {
		c.Providers.RetryAttempts = 2
	}
	if c.Providers.RetryDelay <= 0 {
		c.Providers.RetryDelay = 500 * time.Millisecond
	}
	if c.Providers.Coingecko.BaseURL == "" {
		c.Providers.Coingecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Providers.Coingecko.PerPage <= 0 {
		c.Providers.Coingecko.PerPage = 250
	}
	if c.Providers.Coingecko.Pages <= 0 {
		c.Providers.Coingecko.Pages = 2
	}
	if c.Providers.Coinpaprika.BaseURL == "" {
		c.Providers.Coinpaprika.BaseURL = "https://api.coinpaprika.com/v1"
	}
	if c.Providers.Coinpaprika.Limit <= 0 {
		c.Providers.Coinpaprika.Limit = 200
	}
	if c.Providers.Yahoo.BaseURL == "" {
		c.Providers.Yahoo.BaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.Providers.Finnhub.BaseURL == "" {
		c.Providers.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if len(c.Providers.Stocks.Symbols) == 0 {
		c.Providers.Stocks.Symbols = DefaultStockSymbols
	}
	if c.Providers.Stocks.FetchDelay <= 0 {
		c.Providers.Stocks.FetchDelay = 200 * time.Millisecond
	}
	if c.Criteria.MinMarketCap <= 0 {
		c.Criteria.MinMarketCap = 10_000_000
	}
	if c.Criteria.MinVolume24h <= 0 {
		c.Criteria.MinVolume24h = 1_000_000
	}
	if c.Criteria.MaxPrice <= 0 {
		c.Criteria.MaxPrice = 5
	}
	if c.Criteria.DailyBudget <= 0 {
		c.Criteria.DailyBudget = 10
	}
	if c.Schedule.Time == "" {
		c.Schedule.Time = "10:00"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "Europe/Moscow"
	}
	if len(c.Schedule.Classes) == 0 {
		c.Schedule.Classes = []string{"crypto", "stocks", "bonds"}
	}
	if c.Delivery.Telegram.BaseURL == "" {
		c.Delivery.Telegram.BaseURL = "https://api.telegram.org"
	}
	if c.Queue.Workers <= 0 {
		c.Queue.Workers = 1
	}
	if c.Queue.RetryLimit <= 0 {
		c.Queue.RetryLimit = 3
	}
	if c.Queue.RetryDelay <= 0 {
		c.Queue.RetryDelay = 30 * time.Second
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid. A failure here is surfaced
// to the caller before any network call is made.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	for _, cl := range c.Schedule.Classes {
		if cl != "crypto" && cl != "stocks" && cl != "bonds" {
			return fmt.Errorf("schedule.classes contains unknown class '%s'", cl)
		}
	}
	if _, _, err := util.ParseClock(c.Schedule.Time); err != nil {
		return fmt.Errorf("schedule.time must be HH:MM, got '%s'", c.Schedule.Time)
	}
	if c.Delivery.Telegram.Enabled {
		if c.Delivery.Telegram.BotToken == "" {
			return fmt.Errorf("delivery.telegram.bot_token is required when telegram is enabled")
		}
		if c.Delivery.Telegram.ChatID == "" {
			return fmt.Errorf("delivery.telegram.chat_id is required when telegram is enabled")
		}
	}
	if c.Providers.Finnhub.Enabled && c.Providers.Finnhub.APIKey == "" {
		return fmt.Errorf("providers.finnhub.api_key is required when finnhub is enabled")
	}
	if c.Queue.Enabled && !c.Cache.Redis.Enabled {
		return fmt.Errorf("queue requires cache.redis to be enabled")
	}
	if c.Sinks.Kafka.Enabled && len(c.Sinks.Kafka.Brokers) == 0 {
		return fmt.Errorf("sinks.kafka.brokers cannot be empty when kafka sink is enabled")
	}
	if c.Sinks.ClickHouse.Enabled && c.Sinks.ClickHouse.Host == "" {
		return fmt.Errorf("sinks.clickhouse.host is required when clickhouse sink is enabled")
	}
	return nil
}
