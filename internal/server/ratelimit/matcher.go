package ratelimit

// unlimited is returned for the status and health endpoints.
var unlimited = &EndpointConfig{}

// MatchEndpoint returns the configuration for a request path and method, or
// nil when no endpoint-specific limit applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && (path == "/" || path == "/health") {
		return unlimited
	}
	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	return nil
}
