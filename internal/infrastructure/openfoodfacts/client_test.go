package openfoodfacts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soychecker/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://api.example.com/api/v2/", nil)

	assert.NotNil(t, client)
	assert.Equal(t, "https://api.example.com/api/v2", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Zero(t, client.httpClient.Timeout)
	assert.NotNil(t, client.logger)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient(DefaultBaseURL, zap.NewNop())

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestProductURL(t *testing.T) {
	client := NewClient(DefaultBaseURL, nil)

	assert.Equal(t, "https://world.openfoodfacts.net/api/v2/product/041390001019", client.productURL("041390001019"))
	assert.Equal(t, "https://world.openfoodfacts.net/api/v2/product/a%2Fb", client.productURL("a/b"))
}

func TestGetProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v2/product/041390001019", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code":   "041390001019",
			"status": 1,
			"product": map[string]any{
				"product_name":     "Peanut Butter",
				"brands":           "Acme",
				"allergens":        "en:milk,en:soybeans",
				"ingredients_text": "sugar, peanuts",
				"nutriments":       map[string]any{"fat": 50.0},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/v2", nil)

	record, err := client.GetProduct(context.Background(), "041390001019")

	require.NoError(t, err)
	assert.Equal(t, "Peanut Butter", record.Product.Name())
	assert.Equal(t, "Acme", record.Product.Brand())
	assert.Equal(t, "en:milk,en:soybeans", record.Product.Allergens())
	assert.Equal(t, map[string]any{"fat": 50.0}, record.Product["nutriments"])
}

func TestGetProduct_KeepsRawProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"041390001019","product":{"product_name":"Tofu","code":"041390001019","nutriments":{"proteins_100g":8}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	record, err := client.GetProduct(context.Background(), "041390001019")

	require.NoError(t, err)
	assert.Equal(t, `{"product_name":"Tofu","code":"041390001019","nutriments":{"proteins_100g":8}}`, string(record.Raw))

	want := "{\n  \"product_name\": \"Tofu\",\n  \"code\": \"041390001019\",\n  \"nutriments\": {\n    \"proteins_100g\": 8\n  }\n}"
	assert.Equal(t, want, record.PrettyJSON())
}

func TestGetProduct_EmptyProductObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"product":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	record, err := client.GetProduct(context.Background(), "123")

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.UnknownProductName, record.Product.Name())
}

func TestGetProduct_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "404 status", status: http.StatusNotFound, body: `{"status":0,"status_verbose":"product not found"}`},
		{name: "server error", status: http.StatusInternalServerError, body: ``},
		{name: "missing product field", status: http.StatusOK, body: `{"code":"0","status":0}`},
		{name: "null product", status: http.StatusOK, body: `{"product":null}`},
		{name: "product is not an object", status: http.StatusOK, body: `{"product":"nope"}`},
		{name: "invalid json", status: http.StatusOK, body: `invalid json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)

			product, err := client.GetProduct(context.Background(), "0")

			assert.Nil(t, product)
			assert.ErrorIs(t, err, domain.ErrProductNotFound)
			assert.Equal(t, 1, attempts) // never retried
		})
	}
}

func TestGetProduct_TransportFailureIsLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(baseURL, zap.New(core))

	product, err := client.GetProduct(context.Background(), "041390001019")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)

	entries := logs.FilterMessage("error fetching product").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "041390001019", entries[0].ContextMap()["barcode"])
}

func TestGetProduct_DebugLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"product":{"product_name":"Tofu"}}`))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := NewClient(server.URL, zap.New(core))
	client.SetDebug(true)

	_, err := client.GetProduct(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("requesting product").Len())
	assert.Equal(t, 1, logs.FilterMessage("product response").Len())
}

func TestGetProduct_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	product, err := client.GetProduct(ctx, "timeout-test")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
