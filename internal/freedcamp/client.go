// Package freedcamp wraps the Freedcamp REST API behind typed operations.
// Every operation performs exactly one request/response round trip; the
// client holds no state beyond the immutable credential pair.
package freedcamp

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the Freedcamp API. Safe for concurrent use: the only
// mutable state is the underlying http.Client's connection pool.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     *zap.Logger

	// now is swapped in tests to pin the signing timestamp.
	now func() time.Time
}

// NewClient creates a new Freedcamp client. The secret may be empty, in
// which case requests go out unsigned.
func NewClient(baseURL, apiKey, apiSecret string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// authParams returns the per-request signing parameters: a unix timestamp
// and the hex HMAC-SHA1 of key+timestamp keyed by the API secret. Without a
// secret no signing parameters are attached.
func (c *Client) authParams() url.Values {
	params := url.Values{}
	if c.apiSecret == "" {
		return params
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	mac := hmac.New(sha1.New, []byte(c.apiSecret))
	mac.Write([]byte(c.apiKey + timestamp))

	params.Set("timestamp", timestamp)
	params.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return params
}

// get issues a GET request and returns the raw data payload.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint, query, nil)
}

// post issues a POST request. Freedcamp expects the JSON payload wrapped in
// a form-encoded "data" field.
func (c *Client) post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, endpoint, nil, payload)
}

// delete issues a DELETE request.
func (c *Client) delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, payload any) (json.RawMessage, error) {
	params := c.authParams()
	for key, values := range query {
		for _, value := range values {
			params.Add(key, value)
		}
	}

	requestURL := c.baseURL + "/" + endpoint
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		form := url.Values{"data": {string(data)}}
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("freedcamp request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	var envelope apiEnvelope
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Msg != "" {
			apiErr.Code = envelope.ErrorCode
			apiErr.Message = envelope.Msg
		}
		return nil, apiErr
	}

	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Some API failures come back as 200 with an error code in the body.
	if envelope.HTTPCode >= 400 || envelope.ErrorCode != 0 {
		status := envelope.HTTPCode
		if status == 0 {
			status = resp.StatusCode
		}
		return nil, &APIError{Status: status, Code: envelope.ErrorCode, Message: envelope.Msg}
	}

	return envelope.Data, nil
}
