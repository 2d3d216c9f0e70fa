package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the limiter configuration. Requests whose path matches no
// EndpointConfig consume from the default budget.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// EndpointConfig is the budget for one endpoint. A Path ending in "/" is a
// prefix match, so "/api/favorites/" covers "/api/favorites/{id}". Burst is
// the bucket capacity and defaults to Limit when zero.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig reads the limiter configuration from RATE_LIMIT_* environment
// variables, with the endpoint budgets from DefaultEndpointConfigs.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint budgets. Each generation
// request fans out to several LLM calls, so those endpoints are an order of
// magnitude tighter than uploads and favorite writes; plain reads use the
// default budget and the health check is exempted by MatchEndpoint.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/generate-questions", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/api/generate-questions/stream", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/api/load-more", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		{Path: "/api/extract-text", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/extract-text-base64", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/favorites", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/favorites/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// MatchEndpoint finds the budget for a request path and method: exact match
// first, then prefix configs (Path ending in "/"). The health check returns
// an unlimited budget; any other unmatched request returns nil and falls to
// the default.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/api/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	for i := range configs {
		if configs[i].Method == method &&
			strings.HasSuffix(configs[i].Path, "/") &&
			strings.HasPrefix(path, configs[i].Path) {
			return &configs[i]
		}
	}
	return nil
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// clientSet parses a comma-separated client ID list into a lookup set.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
