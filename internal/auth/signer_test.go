package auth_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/paymentrails/paymentrails-go/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Unix(1700000000, 0)
}

func expectedSignature(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))

	return hex.EncodeToString(mac.Sum(nil))
}

func TestNewKeySigner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		secret  string
		wantErr error
	}{
		{name: "valid pair", key: "pk", secret: "sk"},
		{name: "missing key", key: "", secret: "sk", wantErr: auth.ErrMissingAPIKey},
		{name: "missing secret", key: "pk", secret: "", wantErr: auth.ErrMissingAPISecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			signer, err := auth.NewKeySigner(tt.key, tt.secret)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, signer)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.key, signer.APIKey())
		})
	}
}

func TestKeySigner_Sign(t *testing.T) {
	t.Parallel()

	t.Run("request without body", func(t *testing.T) {
		t.Parallel()

		signer, err := auth.NewKeySigner("public-key", "private-key", auth.WithClock(fixedClock))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "https://api.example.com/v1/recipients?page=2&search=bob", nil)

		err = signer.Sign(req, nil)
		require.NoError(t, err)

		assert.Equal(t, "1700000000", req.Header.Get("X-PR-Timestamp"))

		want := expectedSignature("private-key", "1700000000\nGET\n/v1/recipients?page=2&search=bob\n\n")
		assert.Equal(t, "prsign public-key:"+want, req.Header.Get("Authorization"))
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		signer, err := auth.NewKeySigner("public-key", "private-key", auth.WithClock(fixedClock))
		require.NoError(t, err)

		body := []byte(`{"sourceCurrency":"USD"}`)
		req := httptest.NewRequest(http.MethodPost, "https://api.example.com/v1/batches", bytes.NewReader(body))

		err = signer.Sign(req, body)
		require.NoError(t, err)

		want := expectedSignature("private-key", "1700000000\nPOST\n/v1/batches\n"+string(body)+"\n")
		assert.True(t, strings.HasSuffix(req.Header.Get("Authorization"), ":"+want))
		assert.True(t, signer.Verify("1700000000", http.MethodPost, "/v1/batches", body, want))
	})

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()

		signer, err := auth.NewKeySigner("public-key", "private-key")
		require.NoError(t, err)

		require.ErrorIs(t, signer.Sign(nil, nil), auth.ErrNilRequest)
	})
}

func TestKeySigner_Verify(t *testing.T) {
	t.Parallel()

	signer, err := auth.NewKeySigner("public-key", "private-key")
	require.NoError(t, err)

	signature := signer.Signature("1", http.MethodDelete, "/v1/batches/B-1", nil)

	assert.True(t, signer.Verify("1", http.MethodDelete, "/v1/batches/B-1", nil, signature))
	assert.False(t, signer.Verify("2", http.MethodDelete, "/v1/batches/B-1", nil, signature))
	assert.False(t, signer.Verify("1", http.MethodGet, "/v1/batches/B-1", nil, signature))

	other, err := auth.NewKeySigner("public-key", "other-secret")
	require.NoError(t, err)
	assert.NotEqual(t, signature, other.Signature("1", http.MethodDelete, "/v1/batches/B-1", nil))
}
