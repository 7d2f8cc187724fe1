//go:build integration

// Package integration runs the client against the PaymentRails sandbox.
//
// Credentials come from PAYMENTRAILS_API_KEY and PAYMENTRAILS_API_SECRET, either
// exported or in a .env file at the repository root. Run with:
//
//	go test -tags integration ./test/integration/...
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/paymentrails/paymentrails-go/pkg/prclient"
	"github.com/stretchr/testify/require"
)

const testTimeout = 60 * time.Second

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIKey      string
	APISecret   string
	Environment string
	BaseURL     string
}

// LoadTestConfig loads configuration from .env and environment variables.
func LoadTestConfig() *TestConfig {
	_ = godotenv.Load("../../.env")

	environment := os.Getenv("PAYMENTRAILS_ENVIRONMENT")
	if environment == "" {
		environment = "sandbox"
	}

	return &TestConfig{
		APIKey:      os.Getenv("PAYMENTRAILS_API_KEY"),
		APISecret:   os.Getenv("PAYMENTRAILS_API_SECRET"),
		Environment: environment,
		BaseURL:     os.Getenv("PAYMENTRAILS_BASE_URL"),
	}
}

// newTestClient returns a client and a context bounded by testTimeout, skipping
// the test when no credentials are configured.
func newTestClient(t *testing.T) (paymentrails.Client, context.Context) {
	t.Helper()

	config := LoadTestConfig()
	if config.APIKey == "" || config.APISecret == "" {
		t.Skip("PAYMENTRAILS_API_KEY and PAYMENTRAILS_API_SECRET must be set for integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)

	client, err := prclient.New(ctx, &paymentrails.Config{
		APIKey:      config.APIKey,
		APISecret:   config.APISecret,
		Environment: config.Environment,
		BaseURL:     config.BaseURL,
	})
	require.NoError(t, err)

	return client, ctx
}

// uniqueEmail returns an address that has never been registered.
func uniqueEmail(prefix string) (string, string) {
	id := uuid.NewString()

	return fmt.Sprintf("%s+%s@example.com", prefix, id), id
}

func stringPtr(s string) *string {
	return &s
}

// createFundedRecipient creates a recipient in Germany with an EUR bank account.
func createFundedRecipient(ctx context.Context, t *testing.T, client paymentrails.Client) *paymentrails.Recipient {
	t.Helper()

	email, id := uniqueEmail("test.batch")

	recipient, err := client.Recipients().Create(ctx, &paymentrails.RecipientCreateRequest{
		Type:      paymentrails.RecipientTypeIndividual,
		FirstName: "Tom",
		LastName:  "Jones " + id,
		Email:     email,
		Address: &paymentrails.AddressRequest{
			Street1:    stringPtr("123 Wolfstrasse"),
			City:       stringPtr("Berlin"),
			Country:    stringPtr("DE"),
			PostalCode: stringPtr("123123"),
		},
	})
	require.NoError(t, err)

	_, err = client.RecipientAccounts().Create(ctx, recipient.ID, &paymentrails.RecipientAccountCreateRequest{
		Type:     "bank-transfer",
		Currency: "EUR",
		IBAN:     "DE89 3704 0044 0532 0130 00",
	})
	require.NoError(t, err)

	return recipient
}

func deleteRecipient(ctx context.Context, t *testing.T, client paymentrails.Client, recipientID string) {
	t.Helper()

	ok, err := client.Recipients().Delete(ctx, recipientID)
	require.NoError(t, err)
	require.True(t, ok)
}
