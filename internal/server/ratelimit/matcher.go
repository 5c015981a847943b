package ratelimit

import "strings"

// unlimited marks an endpoint that is never rate limited.
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint
// configuration. Exact matches win over prefix matches; configured
// paths ending in "/" match as prefixes (so "/download/" covers
// "/download/{id}"). Returns nil when no configuration applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check must stay reachable for probes regardless of
	// client behavior.
	if path == "/health" && method == "GET" {
		return &unlimited
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	for i := range configs {
		if configs[i].Method == method && strings.HasSuffix(configs[i].Path, "/") &&
			strings.HasPrefix(path, configs[i].Path) {
			return &configs[i]
		}
	}

	return nil
}
