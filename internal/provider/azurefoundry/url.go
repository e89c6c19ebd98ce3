package azurefoundry

import (
	"fmt"
	"net/url"
	"strings"
)

// buildTargetURL constructs the Azure AI Foundry chat URL from an endpoint.
// Bare hosts default to https; an explicit http:// scheme is kept for
// local gateways.
func buildTargetURL(endpoint, apiVersion string) (string, error) {
	scheme := "https"
	if strings.HasPrefix(endpoint, "http://") {
		scheme = "http"
	}
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	parsed, err := url.Parse(scheme + "://" + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid endpoint: missing host in %q", endpoint)
	}

	q := url.Values{}
	q.Set("api-version", apiVersion)
	return fmt.Sprintf("%s://%s/models/chat/completions?%s", scheme, parsed.Host, q.Encode()), nil
}
