package sap

import (
	"encoding/base64"
	"strings"

	"stockscan/internal/config"
)

// AuthorizationHeader picks the Authorization value for ERP requests. The
// precedence is fixed: user/password pair, then a literal basic token, then a
// bearer token. An empty result means no Authorization header is sent.
func AuthorizationHeader(cfg config.SAPConfig) string {
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		creds := cfg.BasicAuthUser + ":" + cfg.BasicAuthPass
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	}

	if cfg.BasicAuth != "" {
		if strings.HasPrefix(cfg.BasicAuth, "Basic ") {
			return cfg.BasicAuth
		}
		return "Basic " + cfg.BasicAuth
	}

	if cfg.APIToken != "" {
		return "Bearer " + cfg.APIToken
	}

	return ""
}

// Headers returns the full header set sent on every ERP request.
func Headers(cfg config.SAPConfig) map[string]string {
	headers := map[string]string{
		"Accept":        "application/json",
		"Cache-Control": "no-store",
	}

	if auth := AuthorizationHeader(cfg); auth != "" {
		headers["Authorization"] = auth
	}

	if cfg.APIKeyHeader != "" && cfg.APIKeyValue != "" {
		headers[cfg.APIKeyHeader] = cfg.APIKeyValue
	}

	return headers
}
