package authorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/benx421/payment-gateway/ledger/internal/config"
	"github.com/sony/gobreaker"
)

// authorizeResponse mirrors the authorizer API wire format
type authorizeResponse struct {
	Status string `json:"status"`
	Data   struct {
		Authorized bool `json:"authorized"`
	} `json:"data"`
}

// Client calls the external authorizer API. Calls run through a circuit
// breaker: once the authorizer has failed enough consecutive calls the
// breaker rejects fast instead of tying up callers on a dead dependency.
// The breaker sheds load only; it never retries.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Client from configuration
func NewClient(cfg *config.AuthorizerConfig, logger *slog.Logger) *Client {
	maxFailures := uint32(cfg.BreakerMaxFailures) // #nosec G115 -- validated >= 1 in config
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "authorizer",
		Timeout: cfg.BreakerOpenInterval,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("authorizer breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		baseURL:    cfg.BaseURL,
		logger:     logger,
	}
}

// Authorize performs a single authorization call. Transport and protocol
// failures (including an open breaker) come back as *TransportError.
func (c *Client) Authorize(ctx context.Context, req Request) (bool, error) {
	params := url.Values{}
	params.Set("cpf", req.CPF)
	params.Set("amount", req.Amount.String())
	params.Set("identifier", req.Identifier)

	if req.Card != nil {
		params.Set("cardNumber", req.Card.Number)
		params.Set("cvv", req.Card.CVV)
		params.Set("expirationDate", req.Card.Expiration)
		params.Set("installments", strconv.Itoa(req.Card.Installments))
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.doAuthorize(ctx, params)
	})
	if err != nil {
		return false, &TransportError{Err: err}
	}

	return result.(bool), nil
}

func (c *Client) doAuthorize(ctx context.Context, params url.Values) (bool, error) {
	endpoint := c.baseURL + "/authorize?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build authorizer request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("authorizer request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() //nolint:errcheck // close error is not actionable
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, fmt.Errorf("failed to read authorizer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("authorizer returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded authorizeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return false, fmt.Errorf("failed to decode authorizer response: %w", err)
	}

	c.logger.Debug("authorizer response",
		"status", decoded.Status,
		"authorized", decoded.Data.Authorized,
	)

	return decoded.Data.Authorized, nil
}
