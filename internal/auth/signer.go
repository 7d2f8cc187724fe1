package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/paymentrails/paymentrails-go/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrMissingAPIKey    = errors.New("api key is required")
	ErrMissingAPISecret = errors.New("api secret is required")
	ErrNilRequest       = errors.New("cannot sign a nil request")
)

// Signer attaches credentials to an outgoing request.
type Signer interface {
	Sign(req *http.Request, body []byte) error
}

// Clock returns the current time. It is swapped out in tests.
type Clock func() time.Time

// KeySigner signs requests with an API key pair.
//
// Each request carries the unix timestamp in X-PR-Timestamp and an
// Authorization header of the form "prsign <key>:<signature>", where the
// signature is the hex HMAC-SHA256 of "<ts>\n<METHOD>\n<REQUEST_URI>\n<BODY>\n"
// keyed with the secret.
type KeySigner struct {
	apiKey    string
	apiSecret string
	now       Clock
}

// SignerOption configures a KeySigner.
type SignerOption func(*KeySigner)

// WithClock overrides the time source used for the request timestamp.
func WithClock(clock Clock) SignerOption {
	return func(s *KeySigner) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewKeySigner creates a signer for the given key pair.
func NewKeySigner(apiKey, apiSecret string, opts ...SignerOption) (*KeySigner, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if apiSecret == "" {
		return nil, ErrMissingAPISecret
	}

	signer := &KeySigner{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(signer)
	}

	return signer, nil
}

// APIKey returns the public half of the key pair.
func (s *KeySigner) APIKey() string {
	return s.apiKey
}

// Sign implements Signer.
func (s *KeySigner) Sign(req *http.Request, body []byte) error {
	if req == nil || req.URL == nil {
		return ErrNilRequest
	}

	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	signature := s.Signature(timestamp, req.Method, req.URL.RequestURI(), body)

	req.Header.Set(constants.HeaderTimestamp, timestamp)
	req.Header.Set("Authorization", fmt.Sprintf("%s %s:%s", constants.AuthorizationScheme, s.apiKey, signature))

	return nil
}

// Signature computes the hex-encoded request signature.
func (s *KeySigner) Signature(timestamp, method, requestURI string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(s.apiSecret))

	mac.Write([]byte(timestamp + "\n" + method + "\n" + requestURI + "\n"))
	mac.Write(body)
	mac.Write([]byte("\n"))

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the one this signer would produce.
func (s *KeySigner) Verify(timestamp, method, requestURI string, body []byte, signature string) bool {
	expected := s.Signature(timestamp, method, requestURI, body)

	return hmac.Equal([]byte(expected), []byte(signature))
}
