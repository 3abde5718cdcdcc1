package ratelimit

import (
	"strings"
)

// unlimited is returned for routes that are never rate limited.
var unlimited = &EndpointConfig{Path: "/health", Method: "*"}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact paths win over prefixes, and longer prefixes win over shorter ones, so
// "/api/applications/" covers "/api/applications/{id}" without shadowing the
// collection route. Returns nil when nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" {
		return unlimited
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && methodMatches(config.Method, method) {
			return config
		}
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if !methodMatches(config.Method, method) || !strings.HasSuffix(config.Path, "/") {
			continue
		}
		if strings.HasPrefix(path, config.Path) && (best == nil || len(config.Path) > len(best.Path)) {
			best = config
		}
	}
	return best
}

func methodMatches(pattern, method string) bool {
	return pattern == "*" || pattern == method
}
