package utils

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// HasImageURLShape reports whether rawURL uses an http/https scheme and ends
// with an allowed image extension. It does not touch the network.
func HasImageURLShape(rawURL string) bool {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return false
	}
	lower := strings.ToLower(rawURL)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ImageValidator confirms that image URLs are well-formed and reachable.
// The production client is SSRF-guarded: requests to private, loopback and
// link-local addresses are refused at the dialer level.
type ImageValidator struct {
	client *http.Client
}

// NewImageValidator builds a validator with an SSRF-guarded HTTP client.
func NewImageValidator(timeout time.Duration) *ImageValidator {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return &ImageValidator{client: safeurl.Client(config).Client}
}

// NewImageValidatorWithClient builds a validator around an existing client.
func NewImageValidatorWithClient(client *http.Client) *ImageValidator {
	return &ImageValidator{client: client}
}

// IsValidImageURL checks shape first, then confirms the URL responds 2xx with
// an image content type.
func (v *ImageValidator) IsValidImageURL(ctx context.Context, rawURL string) bool {
	if !HasImageURLShape(rawURL) {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "image/")
}
