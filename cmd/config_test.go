package cmd

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/etnz/fundamentals"
	"github.com/etnz/fundamentals/yahoo"
	"github.com/rs/zerolog"
)

// withFlags sets the global flags for the duration of the test.
func withFlags(t *testing.T, level, url string, rate float64, timeout time.Duration) {
	t.Helper()
	old := []any{*logLevelFlag, *yahooURLFlag, *rateLimitFlag, *timeoutFlag}
	*logLevelFlag, *yahooURLFlag, *rateLimitFlag, *timeoutFlag = level, url, rate, timeout
	t.Cleanup(func() {
		*logLevelFlag = old[0].(string)
		*yahooURLFlag = old[1].(string)
		*rateLimitFlag = old[2].(float64)
		*timeoutFlag = old[3].(time.Duration)
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	withFlags(t, "", "", 0, 0)
	for _, key := range []string{EnvLogLevel, EnvYahooURL, EnvUserAgent, EnvRateLimit, EnvTimeout} {
		t.Setenv(key, "")
	}
	got, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	want := Config{
		LogLevel:  zerolog.WarnLevel,
		YahooURL:  yahoo.DefaultBaseURL,
		UserAgent: yahoo.DefaultUserAgent,
		RateLimit: yahoo.DefaultRateLimit,
		Timeout:   yahoo.DefaultTimeout,
	}
	if got != want {
		t.Errorf("loadConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvYahooURL, "http://env.example")
	t.Setenv(EnvRateLimit, "5")
	t.Setenv(EnvTimeout, "2.5")

	withFlags(t, "", "", 0, 0)
	got, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if got.LogLevel != zerolog.InfoLevel || got.YahooURL != "http://env.example" || got.RateLimit != 5 || got.Timeout != 2500*time.Millisecond {
		t.Errorf("loadConfig() from env = %+v", got)
	}

	withFlags(t, "debug", "http://flag.example", 1, time.Second)
	got, err = loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if got.LogLevel != zerolog.DebugLevel || got.YahooURL != "http://flag.example" || got.RateLimit != 1 || got.Timeout != time.Second {
		t.Errorf("loadConfig() from flags = %+v", got)
	}
}

func TestLoadConfigInvalidLevel(t *testing.T) {
	withFlags(t, "loud", "", 0, 0)
	if _, err := loadConfig(); err == nil {
		t.Errorf("loadConfig(loud) error = nil, want an error")
	}
}

func TestEnvFloatInvalid(t *testing.T) {
	t.Setenv(EnvRateLimit, "fast")
	if got := envFloat(EnvRateLimit, 3); got != 3 {
		t.Errorf("envFloat(fast) = %v, want 3", got)
	}
}

func TestRandomSymbol(t *testing.T) {
	for range 20 {
		if s := randomSymbol(); !slices.Contains(DefaultSymbols, s) {
			t.Errorf("randomSymbol() = %q, not a default symbol", s)
		}
	}
}

func TestExplain(t *testing.T) {
	for _, sentinel := range []error{fundamentals.ErrUpstream, fundamentals.ErrDateOutOfRange, fundamentals.ErrMissingField} {
		if err := explain(sentinel); !errors.Is(err, sentinel) || err.Error() == sentinel.Error() {
			t.Errorf("explain(%v) = %v, want a hint wrapping it", sentinel, err)
		}
	}
	plain := errors.New("plain")
	if err := explain(plain); err != plain {
		t.Errorf("explain(plain) = %v, want it unchanged", err)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"inspect", "price"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no %q sub command", name)
		}
	}
}
