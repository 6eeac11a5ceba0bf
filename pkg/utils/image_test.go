package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasImageURLShape(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "https jpg", url: "https://cdn.example.com/a.jpg", expected: true},
		{name: "http png", url: "http://cdn.example.com/a.png", expected: true},
		{name: "uppercase extension", url: "https://cdn.example.com/a.JPEG", expected: true},
		{name: "gif not allowed", url: "https://cdn.example.com/a.gif", expected: false},
		{name: "no extension", url: "https://cdn.example.com/a", expected: false},
		{name: "ftp scheme", url: "ftp://cdn.example.com/a.jpg", expected: false},
		{name: "relative path", url: "/images/a.jpg", expected: false},
		{name: "empty", url: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasImageURLShape(tt.url))
		})
	}
}

func TestIsValidImageURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.WriteHeader(http.StatusOK)
		case "/wrong-type.jpg":
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusOK)
		case "/missing.jpg":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	// The test server listens on loopback, which the SSRF-guarded client
	// refuses, so inject a plain client.
	v := NewImageValidatorWithClient(server.Client())
	ctx := context.Background()

	assert.True(t, v.IsValidImageURL(ctx, server.URL+"/ok.jpg"))
	assert.False(t, v.IsValidImageURL(ctx, server.URL+"/wrong-type.jpg"))
	assert.False(t, v.IsValidImageURL(ctx, server.URL+"/missing.jpg"))
	assert.False(t, v.IsValidImageURL(ctx, server.URL+"/ok.gif"))
	assert.False(t, v.IsValidImageURL(ctx, "not a url"))
}
