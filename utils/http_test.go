package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-insights/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Fetch.RequestsPerSecond = 1000 // don't slow tests down
	return cfg
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient(testConfig(), logrus.New())

	assert.NotNil(t, client)
	assert.NotNil(t, client.client)
	assert.NotNil(t, client.limiter)

	client.Close()
}

func TestHTTPClient_FetchText_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("test response"))
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(), logrus.New())
	defer client.Close()

	body, err := client.FetchText(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "test response", body)
}

func TestHTTPClient_FetchText_SendsFixedHeaders(t *testing.T) {
	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Fetch.UserAgent = "test-agent/1.0"
	client := NewHTTPClient(cfg, logrus.New())
	defer client.Close()

	_, err := client.FetchText(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", gotUserAgent)
	assert.Equal(t, "text/html,application/json;q=0.9,*/*;q=0.8", gotAccept)
}

func TestHTTPClient_FetchText_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(), logrus.New())
	defer client.Close()

	_, err := client.FetchText(context.Background(), server.URL)

	require.Error(t, err)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusNotFound, transportErr.StatusCode)
}

func TestHTTPClient_FetchText_NoRetries(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(), logrus.New())
	defer client.Close()

	_, err := client.FetchText(context.Background(), server.URL)

	require.Error(t, err)
	assert.Equal(t, 1, requests)
}

func TestHTTPClient_FetchJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": [{"title": "Linen Shirt"}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(), logrus.New())
	defer client.Close()

	var payload struct {
		Products []struct {
			Title string `json:"title"`
		} `json:"products"`
	}
	err := client.FetchJSON(context.Background(), server.URL, &payload)

	require.NoError(t, err)
	require.Len(t, payload.Products, 1)
	assert.Equal(t, "Linen Shirt", payload.Products[0].Title)
}

func TestHTTPClient_FetchJSON_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewHTTPClient(testConfig(), logrus.New())
	defer client.Close()

	var payload map[string]interface{}
	err := client.FetchJSON(context.Background(), server.URL, &payload)

	require.Error(t, err)
	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestHTTPClient_FetchText_ContextCancelled(t *testing.T) {
	client := NewHTTPClient(testConfig(), logrus.New())
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchText(ctx, "http://example.com")

	require.Error(t, err)
}
