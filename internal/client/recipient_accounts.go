package client

import (
	"context"
	"fmt"

	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/internal/http"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
)

const (
	accountsPath = constants.APIPathRecipients + "/%s/accounts"
	accountPath  = accountsPath + "/%s"
)

// RecipientAccountsClient implements paymentrails.RecipientAccountsClient.
type RecipientAccountsClient struct {
	httpClient *http.Client
}

// NewRecipientAccountsClient creates a new recipient accounts client.
func NewRecipientAccountsClient(httpClient *http.Client) *RecipientAccountsClient {
	return &RecipientAccountsClient{
		httpClient: httpClient,
	}
}

// Create implements paymentrails.RecipientAccountsClient.Create.
func (c *RecipientAccountsClient) Create(ctx context.Context, recipientID string, request *paymentrails.RecipientAccountCreateRequest) (*paymentrails.RecipientAccount, error) {
	if request == nil {
		return nil, paymentrails.ErrRequestNil
	}

	path, err := itemPath(accountsPath, recipientID)
	if err != nil {
		return nil, err
	}

	return postResource[paymentrails.RecipientAccount](ctx, c.httpClient, path, constants.KeyAccount, "creating recipient account", request)
}

// Find implements paymentrails.RecipientAccountsClient.Find.
func (c *RecipientAccountsClient) Find(ctx context.Context, recipientID, accountID string) (*paymentrails.RecipientAccount, error) {
	path, err := itemPath(accountPath, recipientID, accountID)
	if err != nil {
		return nil, err
	}

	return getResource[paymentrails.RecipientAccount](ctx, c.httpClient, path, constants.KeyAccount, "recipient account")
}

// Update implements paymentrails.RecipientAccountsClient.Update.
func (c *RecipientAccountsClient) Update(ctx context.Context, recipientID, accountID string, request *paymentrails.RecipientAccountUpdateRequest) (bool, error) {
	if request == nil {
		return false, paymentrails.ErrRequestNil
	}

	path, err := itemPath(accountPath, recipientID, accountID)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return false, fmt.Errorf("updating recipient account: %w", err)
	}

	return acknowledge(resp, "recipient account update")
}

// Delete implements paymentrails.RecipientAccountsClient.Delete.
func (c *RecipientAccountsClient) Delete(ctx context.Context, recipientID, accountID string) (bool, error) {
	path, err := itemPath(accountPath, recipientID, accountID)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return false, fmt.Errorf("deleting recipient account: %w", err)
	}

	return acknowledge(resp, "recipient account delete")
}

// All implements paymentrails.RecipientAccountsClient.All.
// Accounts are returned in creation order on a single page.
func (c *RecipientAccountsClient) All(ctx context.Context, recipientID string) (*paymentrails.Collection[paymentrails.RecipientAccount], error) {
	path, err := itemPath(accountsPath, recipientID)
	if err != nil {
		return nil, err
	}

	return listResources[paymentrails.RecipientAccount](ctx, c.httpClient, path, constants.KeyAccounts, nil)
}
