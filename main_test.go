package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestScheme(t *testing.T) {
	plain := httptest.NewRequest("GET", "http://example.com/", nil)
	assert.Equal(t, "http", requestScheme(plain))

	// httptest sets a non-nil TLS state for https targets.
	tls := httptest.NewRequest("GET", "https://example.com/", nil)
	assert.Equal(t, "https", requestScheme(tls))

	forwarded := httptest.NewRequest("GET", "http://example.com/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https", requestScheme(forwarded))
}
