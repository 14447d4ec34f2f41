package delivery

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrInvalidWebhook  = errors.New("invalid webhook url")
	ErrInsecureWebhook = errors.New("webhook must use https when the page is served over https")
)

// ValidateEndpoint checks that endpoint is an absolute http(s) URL and, when
// the host page origin is secure, that the endpoint is secure too.
func ValidateEndpoint(endpoint, pageOrigin string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidWebhook, endpoint)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidWebhook, u.Scheme)
	}
	if secureOrigin(pageOrigin) && scheme != "https" {
		return nil, ErrInsecureWebhook
	}
	return u, nil
}

func secureOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, "https")
}
