package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/VijayAsokkumar/VigilAI/internal/lookup"
	"github.com/VijayAsokkumar/VigilAI/pkg/market"
	"github.com/VijayAsokkumar/VigilAI/pkg/news"
)

const (
	ProviderYahoo   = "yahoo"
	ProviderFinnhub = "finnhub"

	DefaultPort              = "8080"
	DefaultRequestTimeoutSec = 15
)

type ServerConfig struct {
	Port              string `yaml:"port"`
	FrontendURL       string `yaml:"frontend_url"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
	LogLevel          string `yaml:"log_level"`
}

type MarketConfig struct {
	Provider       string `yaml:"provider"` // "yahoo" or "finnhub"
	ExchangeSuffix string `yaml:"exchange_suffix"`
	YahooBaseURL   string `yaml:"yahoo_base_url"`
	FinnhubAPIKey  string `yaml:"finnhub_api_key"`
}

type NewsConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	IndustryQuery string `yaml:"industry_query"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Market MarketConfig `yaml:"market"`
	News   NewsConfig   `yaml:"news"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              DefaultPort,
			RequestTimeoutSec: DefaultRequestTimeoutSec,
			LogLevel:          "info",
		},
		Market: MarketConfig{
			Provider:       ProviderYahoo,
			ExchangeSuffix: lookup.DefaultExchangeSuffix,
			YahooBaseURL:   market.DefaultYahooBaseURL,
		},
		News: NewsConfig{
			BaseURL:       news.DefaultNewsAPIBaseURL,
			IndustryQuery: lookup.DefaultIndustryQuery,
		},
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "vigilai", "config.yaml")
}

// Load builds the configuration from defaults, the YAML file and the
// environment, in that order. A .env file in the working directory is loaded
// into the environment first. An empty path falls back to CONFIG_FILE and
// then DefaultConfigPath; only an explicitly named file has to exist.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		path = DefaultConfigPath()
		explicit = false
	}

	if err := cfg.readFile(path, explicit); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, mustExist bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.FrontendURL, "FRONTEND_URL")
	setString(&c.Server.LogLevel, "LOG_LEVEL")
	setString(&c.Market.Provider, "MARKET_PROVIDER")
	setString(&c.Market.YahooBaseURL, "YAHOO_BASE_URL")
	setString(&c.Market.FinnhubAPIKey, "FINNHUB_API_KEY")
	setString(&c.News.APIKey, "NEWS_API_KEY")
	setString(&c.News.BaseURL, "NEWS_BASE_URL")
	setString(&c.News.IndustryQuery, "INDUSTRY_NEWS_QUERY")

	// An empty suffix is meaningful: symbols go to the provider unqualified.
	if v, ok := os.LookupEnv("EXCHANGE_SUFFIX"); ok {
		c.Market.ExchangeSuffix = v
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT_SEC: %w", err)
		}
		c.Server.RequestTimeoutSec = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	switch c.Market.Provider {
	case ProviderYahoo:
	case ProviderFinnhub:
		if c.Market.FinnhubAPIKey == "" {
			return errors.New("market provider finnhub requires FINNHUB_API_KEY")
		}
	default:
		return fmt.Errorf("unknown market provider %q (valid: yahoo, finnhub)", c.Market.Provider)
	}

	if c.Server.RequestTimeoutSec <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d", c.Server.RequestTimeoutSec)
	}
	if c.Server.Port == "" {
		return errors.New("port is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if strings.TrimSpace(c.News.IndustryQuery) == "" {
		return errors.New("industry news query is required")
	}

	if err := validateBaseURL("yahoo base url", c.Market.YahooBaseURL); err != nil {
		return err
	}
	return validateBaseURL("news base url", c.News.BaseURL)
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: url scheme must be http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: url has no host", name)
	}
	return nil
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSec) * time.Second
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Server.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// AllowedOrigins is the CORS allow list: the local frontend plus any
// comma-separated origins from FrontendURL.
func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	for _, o := range strings.Split(c.Server.FrontendURL, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" && o != origins[0] {
			origins = append(origins, o)
		}
	}
	return origins
}
