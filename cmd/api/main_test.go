package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-insights/config"
	"shopify-insights/internal/types"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.Fetch.RequestsPerSecond = 1000 // don't slow tests down

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	s, err := NewServer(cfg, logger)
	require.NoError(t, err)
	return s
}

func postInsights(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/fetch-insights", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestFetchInsights_InvalidBody(t *testing.T) {
	s := testServer(t)

	w := postInsights(t, s, `{"website_url": "not a url"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchInsights_MissingURL(t *testing.T) {
	s := testServer(t)

	w := postInsights(t, s, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchInsights_NotAStorefront(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(`<html><head><title>Plain Blog</title></head><body>hi</body></html>`))
			return
		}
		http.NotFound(w, r)
	}))
	defer site.Close()

	s := testServer(t)

	w := postInsights(t, s, `{"website_url": "`+site.URL+`"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not a Shopify store")
}

func TestFetchInsights_Success(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/":
			w.Write([]byte(`<html><head>
				<title>Acme Store</title>
				<script src="https://cdn.shopify.com/s/theme.js"></script>
			</head><body><p>welcome</p></body></html>`))
		case r.URL.Path == "/products.json" && r.URL.Query().Get("page") == "1":
			w.Write([]byte(`{"products": [{"title": "Aurora Lamp", "handle": "aurora-lamp"}]}`))
		case r.URL.Path == "/products.json":
			w.Write([]byte(`{"products": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer site.Close()

	s := testServer(t)

	w := postInsights(t, s, `{"website_url": "`+site.URL+`"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var profile types.BrandProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.True(t, profile.IsShopify)
	assert.Equal(t, "Acme Store", profile.BrandName)
	require.Len(t, profile.ProductCatalog, 1)
	assert.Equal(t, "Aurora Lamp", profile.ProductCatalog[0].Title)
}
