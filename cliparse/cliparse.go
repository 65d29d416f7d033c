package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	Timezone         string
	RateLimitRPS     float64
	RateLimitBurst   int
	PollOpenInterval time.Duration
	LogLevel         string
}

// LoadEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags reads flags, falling back to environment variables and then
// to defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var interval string

	fs := flag.NewFlagSet("barpoll", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Polls
	fs.StringVar(&cfg.Timezone, "tz", "", "IANA time zone that decides the poll day (default UTC)")
	fs.StringVar(&interval, "poll-interval", "", "How often to open missing daily polls (default 15m)")

	// Operations
	fs.Float64Var(&cfg.RateLimitRPS, "rps", 0, "Requests per second per client (default 10)")
	fs.IntVar(&cfg.RateLimitBurst, "burst", 0, "Request burst per client (default 20)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "debug, info, warn or error (default info)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.Timezone == "" {
		cfg.Timezone = os.Getenv("TIMEZONE")
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	if interval == "" {
		interval = os.Getenv("POLL_OPEN_INTERVAL")
	}
	if interval == "" {
		cfg.PollOpenInterval = 15 * time.Minute
	} else {
		d, err := time.ParseDuration(interval)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid POLL_OPEN_INTERVAL (use a duration such as 15m)")
		}
		cfg.PollOpenInterval = d
	}

	if cfg.RateLimitRPS == 0 {
		if s := os.Getenv("RATE_LIMIT_RPS"); s != "" {
			rps, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT_RPS env variable")
			}
			cfg.RateLimitRPS = rps
		} else {
			cfg.RateLimitRPS = 10
		}
	}

	if cfg.RateLimitBurst == 0 {
		if s := os.Getenv("RATE_LIMIT_BURST"); s != "" {
			burst, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT_BURST env variable")
			}
			cfg.RateLimitBurst = burst
		} else {
			cfg.RateLimitBurst = 20
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	return cfg, nil
}
