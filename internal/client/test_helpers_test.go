package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paymentrails/paymentrails-go/internal/auth"
	internalhttp "github.com/paymentrails/paymentrails-go/internal/http"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey    = "test-public-key"
	testAPISecret = "test-private-key"
)

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) *Client {
	// Create HTTP client without a signer for testing
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client
}

// newSignedTestClient builds a client through New so requests carry real signatures.
func newSignedTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(context.Background(), &paymentrails.Config{
		APIKey:    testAPIKey,
		APISecret: testAPISecret,
		BaseURL:   baseURL,
	})
	require.NoError(t, err)

	return client
}

// verifySignature checks the Authorization header produced by the test key pair.
func verifySignature(request *http.Request, body []byte) bool {
	signer, err := auth.NewKeySigner(testAPIKey, testAPISecret)
	if err != nil {
		return false
	}

	timestamp := request.Header.Get("X-PR-Timestamp")
	prefix := "prsign " + testAPIKey + ":"

	header := request.Header.Get("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return false
	}

	return signer.Verify(timestamp, request.Method, request.URL.RequestURI(), body, header[len(prefix):])
}

func readBody(request *http.Request) ([]byte, error) {
	if request.Body == nil {
		return nil, nil
	}

	return io.ReadAll(request.Body)
}

func newBody(body []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(body))
}

// cannedServer replies to one expected request with a fixed status and raw body.
func cannedServer(t *testing.T, method, path string, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, method, request.Method)
		assert.Equal(t, path, request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

// decodeJSONBody decodes the request body into a generic map.
func decodeJSONBody(t *testing.T, request *http.Request) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	err := json.NewDecoder(request.Body).Decode(&body)
	require.NoError(t, err)

	return body
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
