package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/etnz/fundamentals/yahoo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment variables read when the matching flag is not set.
const (
	EnvLogLevel  = "FND_LOG_LEVEL"
	EnvYahooURL  = "FND_YAHOO_URL"
	EnvUserAgent = "FND_USER_AGENT"
	EnvRateLimit = "FND_RATE_LIMIT"
	EnvTimeout   = "FND_TIMEOUT"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	logLevelFlag  = flag.String("log-level", "", "log level: debug, info, warn, error (env "+EnvLogLevel+", default warn)")
	yahooURLFlag  = flag.String("yahoo-url", "", "base URL of the Yahoo Finance query API (env "+EnvYahooURL+")")
	userAgentFlag = flag.String("user-agent", "", "User-Agent sent to Yahoo Finance (env "+EnvUserAgent+")")
	rateLimitFlag = flag.Float64("rate-limit", 0, "maximum requests per second to Yahoo Finance (env "+EnvRateLimit+")")
	timeoutFlag   = flag.Duration("timeout", 0, "HTTP timeout (env "+EnvTimeout+" in seconds)")
)

// Config is the resolved configuration of a run.
type Config struct {
	LogLevel  zerolog.Level
	YahooURL  string
	UserAgent string
	RateLimit float64
	Timeout   time.Duration
}

var config = Config{
	LogLevel:  zerolog.WarnLevel,
	YahooURL:  yahoo.DefaultBaseURL,
	UserAgent: yahoo.DefaultUserAgent,
	RateLimit: yahoo.DefaultRateLimit,
	Timeout:   yahoo.DefaultTimeout,
}

// Setup loads the configuration and the logger. It must be called after flag.Parse.
//
// Flags take precedence over environment variables, that take precedence over
// a .env file in the current directory.
func Setup() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	config = cfg
	setupLogger(cfg.LogLevel)
	return nil
}

// loadConfig resolves every setting from flags, then environment, then defaults.
func loadConfig() (Config, error) {
	level, err := zerolog.ParseLevel(firstNonEmpty(*logLevelFlag, envStr(EnvLogLevel, "warn")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}
	cfg := Config{
		LogLevel:  level,
		YahooURL:  firstNonEmpty(*yahooURLFlag, envStr(EnvYahooURL, yahoo.DefaultBaseURL)),
		UserAgent: firstNonEmpty(*userAgentFlag, envStr(EnvUserAgent, yahoo.DefaultUserAgent)),
		RateLimit: *rateLimitFlag,
		Timeout:   *timeoutFlag,
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = envFloat(EnvRateLimit, yahoo.DefaultRateLimit)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Duration(envFloat(EnvTimeout, yahoo.DefaultTimeout.Seconds()) * float64(time.Second))
	}
	return cfg, nil
}

func setupLogger(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"})
}

// newClient returns a Yahoo client configured for this run.
func newClient() *yahoo.Client {
	return yahoo.New(
		yahoo.WithBaseURL(config.YahooURL),
		yahoo.WithUserAgent(config.UserAgent),
		yahoo.WithRateLimit(config.RateLimit),
		yahoo.WithTimeout(config.Timeout),
	)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid number")
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
