package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/felipemarinho97/webshare-stremio/logging"
	"github.com/joho/godotenv"
	"github.com/xhit/go-str2duration/v2"
)

type Config struct {
	Port             string
	MetricsPort      string
	RedisHost        string
	WebshareAPIURL   string
	PublicURL        string
	SearchLimit      int
	SearchCacheTTL   time.Duration
	FileLinkAttempts uint
	MaxResults       int
}

func Default() Config {
	return Config{
		Port:             "7006",
		MetricsPort:      "8081",
		RedisHost:        "localhost",
		WebshareAPIURL:   "https://webshare.cz/api/",
		PublicURL:        "http://localhost:7006/",
		SearchLimit:      100,
		SearchCacheTTL:   30 * time.Minute,
		FileLinkAttempts: 3,
		MaxResults:       100,
	}
}

// LoadDotEnv exports the variables of the given files, ".env" by default,
// without overriding the ones already set. It runs before the logger is
// initialised so LOG_LEVEL, LOG_FORMAT and LOG_FILE can live there too.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	return godotenv.Load(filenames...)
}

// Load reads the configuration from the environment. Invalid values keep
// their default.
func Load() Config {
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from any lookup function.
func FromEnv(lookup func(string) (string, bool)) Config {
	cfg := Default()

	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	positive := func(name string, dst *int) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			logging.Warn().Str("var", name).Str("value", v).Msg("Invalid value, using default")
			return
		}
		*dst = n
	}

	str("PORT", &cfg.Port)
	str("METRICS_PORT", &cfg.MetricsPort)
	str("REDIS_HOST", &cfg.RedisHost)
	str("WEBSHARE_API_URL", &cfg.WebshareAPIURL)
	str("PUBLIC_URL", &cfg.PublicURL)
	positive("SEARCH_LIMIT", &cfg.SearchLimit)
	positive("MAX_RESULTS", &cfg.MaxResults)

	attempts := int(cfg.FileLinkAttempts)
	positive("FILE_LINK_ATTEMPTS", &attempts)
	cfg.FileLinkAttempts = uint(attempts)

	if v, ok := lookup("SEARCH_CACHE_TTL"); ok && v != "" {
		ttl, err := str2duration.ParseDuration(strings.TrimSpace(v))
		if err != nil || ttl <= 0 {
			logging.Warn().Str("var", "SEARCH_CACHE_TTL").Str("value", v).Msg("Invalid duration, using default")
		} else {
			cfg.SearchCacheTTL = ttl
		}
	}

	if !strings.HasSuffix(cfg.PublicURL, "/") {
		cfg.PublicURL += "/"
	}
	return cfg
}
