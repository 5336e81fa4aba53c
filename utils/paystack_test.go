package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaystackClient(handler http.HandlerFunc) (*PaystackClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := &PaystackClient{
		BaseURL:    server.URL,
		SecretKey:  "sk_test_secret",
		HTTPClient: server.Client(),
	}
	return client, server
}

func TestVerifyTransactionSuccess(t *testing.T) {
	client, server := newTestPaystackClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ref_123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"data": {
				"status": "success",
				"authorization": {"authorization_code": "AUTH_abc123"}
			}
		}`))
	})
	defer server.Close()

	result, err := client.VerifyTransaction("ref_123")
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, "AUTH_abc123", result.AuthorizationCode)
}

func TestVerifyTransactionFailedPayment(t *testing.T) {
	client, server := newTestPaystackClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": true, "data": {"status": "failed", "authorization": {}}}`))
	})
	defer server.Close()

	result, err := client.VerifyTransaction("ref_456")
	require.NoError(t, err)
	assert.False(t, result.Verified)
}

func TestVerifyTransactionNon200(t *testing.T) {
	client, server := newTestPaystackClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	result, err := client.VerifyTransaction("missing")
	require.NoError(t, err)
	assert.False(t, result.Verified)
}
