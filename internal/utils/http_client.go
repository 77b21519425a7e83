package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client bound to baseURL.
//
// Requests time out after timeout (no limit when zero) and idempotent
// requests that fail on the transport level or with a 5xx status are
// retried up to retries times with resty's backoff.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 10*time.Second, 2)
//	resp, err := client.R().Get("/api/properties")
func NewHTTPClient(baseURL string, timeout time.Duration, retries int) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil || r.Request == nil {
				return err != nil
			}
			switch r.Request.Method {
			case "GET", "HEAD", "DELETE":
			default:
				return false
			}
			return err != nil || r.StatusCode() >= 500
		})

	if timeout > 0 {
		c.SetTimeout(timeout)
	}

	return &HTTPClient{Client: c}
}
