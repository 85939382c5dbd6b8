// Package craft talks to the remote document-store REST API. Every call
// carries its own base URL and API key; nothing about a connection is kept
// between requests.
package craft

import (
	"context"
	"net/http"
	"strings"
	"tablepoll-service/internal/pkg/constvars"
	"time"

	"golang.org/x/time/rate"
)

const requestTimeout = 15 * time.Second

// NormalizeAPIURL turns whatever the user pasted into a usable API base:
// scheme defaulted to https, trailing slash removed, /api/v1 suffix ensured.
func NormalizeAPIURL(raw string) string {
	normalized := strings.TrimSpace(raw)

	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	if !strings.HasSuffix(normalized, "/api/v1") {
		normalized = strings.TrimSuffix(normalized, "/")
		normalized = normalized + "/api/v1"
	}

	return normalized
}

type apiClient struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

func newAPIClient(requestsPerSecond float64, burst int) apiClient {
	return apiClient{
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (c apiClient) wait(ctx context.Context) error {
	return c.Limiter.Wait(ctx)
}

func setHeaders(req *http.Request, apiKey string) {
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if apiKey != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+apiKey)
	}
}
