package freedcamp

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	mockServer := httptest.NewServer(handler)
	t.Cleanup(mockServer.Close)

	client := NewClient(mockServer.URL, "test-key", "test-secret", 5*time.Second, zap.NewNop())
	client.now = func() time.Time { return time.Unix(1700000000, 0) }
	return client, mockServer
}

func TestClient_SignsRequests(t *testing.T) {
	mac := hmac.New(sha1.New, []byte("test-secret"))
	mac.Write([]byte("test-key1700000000"))
	wantHash := hex.EncodeToString(mac.Sum(nil))

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		query := r.URL.Query()
		assert.Equal(t, "1700000000", query.Get("timestamp"))
		assert.Equal(t, wantHash, query.Get("hash"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"users":[]}}`))
	})

	_, err := client.ListUsers(context.Background())
	require.NoError(t, err)
}

func TestClient_NoSecretSendsUnsigned(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Empty(t, query.Get("timestamp"))
		assert.Empty(t, query.Get("hash"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		w.Write([]byte(`{"data":{"users":[]}}`))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, "test-key", "", 5*time.Second, zap.NewNop())
	_, err := client.ListUsers(context.Background())
	require.NoError(t, err)
}

func TestClient_RemoteErrorCarriesStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"data":null,"http_code":403,"error_code":101,"msg":"project not found"}`))
	})

	_, err := client.ListUsers(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, 101, apiErr.Code)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "project not found")
}

func TestClient_ErrorBodyWithoutEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.ListUsers(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.Status)
}

func TestClient_APILevelErrorOn200(t *testing.T) {
	// Some failures come back as HTTP 200 with an error code in the body.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"http_code":400,"error_code":7,"msg":"bad parameter"}`))
	})

	_, err := client.ListUsers(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "bad parameter", apiErr.Message)
}

func TestClient_TransportErrorSurfaces(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	mockServer.Close() // connection refused from here on

	client := NewClient(mockServer.URL, "test-key", "", time.Second, zap.NewNop())
	_, err := client.ListUsers(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not look like remote errors")
}
