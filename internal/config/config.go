package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/pipelines/internal/adapter"
)

// ModeEnv names the environment variable consulted when the config file
// does not set a mode.
const ModeEnv = "PIPELINES_ENV"

const (
	ModeDev  = "DEV"
	ModeProd = "PROD"
)

// Config is the root configuration for the pipelines client.
type Config struct {
	Mode         string
	DirectoryURL string `validate:"required,url"`
	Search       SearchConfig
	Discover     DiscoverConfig
	HTTP         HTTPConfig
	RateLimit    RateLimitConfig
}

// SearchConfig controls the debounced school search.
type SearchConfig struct {
	Delay          time.Duration `validate:"gt=0"` // quiet period before a request is issued
	RequestTimeout time.Duration `validate:"gt=0"` // per-request deadline
}

// DiscoverConfig controls the discovery feed.
type DiscoverConfig struct {
	BatchSize int `validate:"min=1,max=100"`
}

// HTTPConfig controls the shared HTTP client.
type HTTPConfig struct {
	Timeout time.Duration `validate:"gt=0"`
}

// RateLimitConfig controls throttling of directory requests.
type RateLimitConfig struct {
	MinDelay time.Duration `validate:"gte=0"` // zero disables throttling
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Mode         string `yaml:"mode"`
	DirectoryURL string `yaml:"directory_url"`
	Search       struct {
		Delay          string `yaml:"delay"`
		RequestTimeout string `yaml:"request_timeout"`
	} `yaml:"search"`
	Discover struct {
		BatchSize int `yaml:"batch_size"`
	} `yaml:"discover"`
	HTTP struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"http"`
	RateLimit struct {
		MinDelay string `yaml:"min_delay"`
	} `yaml:"rate_limit"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mode:         ModeProd,
		DirectoryURL: adapter.DefaultDirectoryURL,
		Search: SearchConfig{
			Delay:          500 * time.Millisecond,
			RequestTimeout: 10 * time.Second,
		},
		Discover: DiscoverConfig{BatchSize: 24},
		HTTP:     HTTPConfig{Timeout: 30 * time.Second},
	}
}

// LoadEnv reads a .env file into the process environment if one exists.
// Variables already set win over the file.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
// An empty path yields Default with the mode taken from the environment.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if mode := os.Getenv(ModeEnv); mode != "" {
			cfg.Mode = mode
		}
		return cfg, check(cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data, filling unset fields from Default.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.Mode = raw.Mode
	if cfg.Mode == "" {
		cfg.Mode = os.Getenv(ModeEnv)
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeProd
	}
	if raw.DirectoryURL != "" {
		cfg.DirectoryURL = strings.TrimRight(raw.DirectoryURL, "/")
	}
	if raw.Discover.BatchSize != 0 {
		cfg.Discover.BatchSize = raw.Discover.BatchSize
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"search.delay", raw.Search.Delay, &cfg.Search.Delay},
		{"search.request_timeout", raw.Search.RequestTimeout, &cfg.Search.RequestTimeout},
		{"http.timeout", raw.HTTP.Timeout, &cfg.HTTP.Timeout},
		{"rate_limit.min_delay", raw.RateLimit.MinDelay, &cfg.RateLimit.MinDelay},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", d.name, d.raw, err)
		}
		*d.dst = v
	}

	if err := check(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func check(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		msgs = append(msgs, fmt.Sprintf("%s: failed %q check (got %v)", field, fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Endpoints are the backend host and the web homepage for one mode.
type Endpoints struct {
	Host     string
	Homepage string
}

// Resolve maps a mode to its endpoints. An unknown mode is logged and yields
// empty endpoints; requests against the empty host then fail.
func Resolve(mode string, logger *slog.Logger) Endpoints {
	switch mode {
	case ModeDev:
		return Endpoints{Host: "http://localhost:4000", Homepage: "http://localhost:3000"}
	case ModeProd:
		return Endpoints{Host: "https://pipelines-backend.onrender.com", Homepage: "https://pipelines.lol"}
	}
	if logger != nil {
		logger.Error("unknown mode", "mode", mode)
	}
	return Endpoints{}
}
