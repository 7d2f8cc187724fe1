package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/paymentrails/paymentrails-go/internal/auth"
	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/internal/http"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
)

// Client implements the paymentrails.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string

	// Resource clients
	recipients        paymentrails.RecipientsClient
	recipientAccounts paymentrails.RecipientAccountsClient
	batches           paymentrails.BatchesClient
}

// New creates a new PaymentRails API client.
func New(_ context.Context, config *paymentrails.Config) (*Client, error) {
	if config == nil {
		return nil, paymentrails.ErrConfigRequired
	}

	baseURL, err := ResolveBaseURL(config)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewKeySigner(config.APIKey, config.APISecret)
	if err != nil {
		return nil, fmt.Errorf("creating request signer: %w", err)
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: http.NewClient(baseURL, signer, httpOpts...),
		baseURL:    baseURL,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

// ResolveBaseURL picks the API root: an explicit BaseURL wins over the environment.
func ResolveBaseURL(config *paymentrails.Config) (string, error) {
	if config.BaseURL != "" {
		return strings.TrimSuffix(config.BaseURL, "/"), nil
	}

	switch strings.ToLower(config.Environment) {
	case "", constants.EnvironmentProduction:
		return constants.ProductionBaseURL, nil
	case constants.EnvironmentSandbox:
		return constants.SandboxBaseURL, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrUnknownEnvironment, config.Environment)
	}
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *paymentrails.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.MetricsRegisterer != nil {
		metrics, err := http.NewMetrics(config.MetricsRegisterer)
		if err != nil {
			return nil, err
		}

		httpOpts = append(httpOpts, http.WithMetrics(metrics))
	}

	return httpOpts, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Recipients implements paymentrails.Client.
func (c *Client) Recipients() paymentrails.RecipientsClient {
	return c.recipients
}

// RecipientAccounts implements paymentrails.Client.
func (c *Client) RecipientAccounts() paymentrails.RecipientAccountsClient {
	return c.recipientAccounts
}

// Batches implements paymentrails.Client.
func (c *Client) Batches() paymentrails.BatchesClient {
	return c.batches
}

func (c *Client) initializeResourceClients() {
	c.recipients = NewRecipientsClient(c.httpClient)
	c.recipientAccounts = NewRecipientAccountsClient(c.httpClient)
	c.batches = NewBatchesClient(c.httpClient)
}
