package authorizer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/ledger/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	cfg := &config.AuthorizerConfig{
		BaseURL:             baseURL,
		Timeout:             2 * time.Second,
		BreakerMaxFailures:  3,
		BreakerOpenInterval: time.Minute,
	}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRequest() Request {
	return Request{
		CPF:        "52998224725",
		Identifier: "DEPOSIT_abc",
		Amount:     decimal.RequireFromString("100.00"),
	}
}

func TestClient_Authorize(t *testing.T) {
	t.Run("authorized response", func(t *testing.T) {
		var gotQuery map[string][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/authorize", r.URL.Path)
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":{"authorized":true}}`))
		}))
		defer server.Close()

		client := testClient(server.URL)

		authorized, err := client.Authorize(context.Background(), testRequest())

		require.NoError(t, err)
		assert.True(t, authorized)
		assert.Equal(t, []string{"52998224725"}, gotQuery["cpf"])
		assert.Equal(t, []string{"DEPOSIT_abc"}, gotQuery["identifier"])
		assert.Equal(t, []string{"100"}, gotQuery["amount"])
		assert.Empty(t, gotQuery["cardNumber"], "card fields must be omitted without a card")
	})

	t.Run("card fields are forwarded", func(t *testing.T) {
		var gotQuery map[string][]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			_, _ = w.Write([]byte(`{"status":"success","data":{"authorized":true}}`))
		}))
		defer server.Close()

		client := testClient(server.URL)
		req := testRequest()
		req.Card = &CardDetails{
			Number:       "4532015112830366",
			CVV:          "123",
			Expiration:   "12/2030",
			Installments: 2,
		}

		_, err := client.Authorize(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, []string{"4532015112830366"}, gotQuery["cardNumber"])
		assert.Equal(t, []string{"123"}, gotQuery["cvv"])
		assert.Equal(t, []string{"12/2030"}, gotQuery["expirationDate"])
		assert.Equal(t, []string{"2"}, gotQuery["installments"])
	})

	t.Run("declined response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"fail","data":{"authorized":false}}`))
		}))
		defer server.Close()

		client := testClient(server.URL)

		authorized, err := client.Authorize(context.Background(), testRequest())

		require.NoError(t, err)
		assert.False(t, authorized)
	})

	t.Run("non-200 response is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := testClient(server.URL)

		authorized, err := client.Authorize(context.Background(), testRequest())

		assert.False(t, authorized)
		var transportErr *TransportError
		assert.ErrorAs(t, err, &transportErr)
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := testClient(server.URL)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			_, err := client.Authorize(ctx, testRequest())
			require.Error(t, err)
		}

		server.Close()

		// Breaker is open now; the call fails fast without reaching the
		// (closed) server.
		_, err := client.Authorize(ctx, testRequest())
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
	})
}
