package client

import (
	"context"
	"fmt"

	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/internal/http"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
)

// RecipientsClient implements paymentrails.RecipientsClient.
type RecipientsClient struct {
	httpClient *http.Client
}

// NewRecipientsClient creates a new recipients client.
func NewRecipientsClient(httpClient *http.Client) *RecipientsClient {
	return &RecipientsClient{
		httpClient: httpClient,
	}
}

// Create implements paymentrails.RecipientsClient.Create.
func (c *RecipientsClient) Create(ctx context.Context, request *paymentrails.RecipientCreateRequest) (*paymentrails.Recipient, error) {
	if request == nil {
		return nil, paymentrails.ErrRequestNil
	}

	return postResource[paymentrails.Recipient](ctx, c.httpClient, constants.APIPathRecipients, constants.KeyRecipient, "creating recipient", request)
}

// Find implements paymentrails.RecipientsClient.Find.
func (c *RecipientsClient) Find(ctx context.Context, recipientID string) (*paymentrails.Recipient, error) {
	path, err := itemPath(constants.APIPathRecipients+"/%s", recipientID)
	if err != nil {
		return nil, err
	}

	return getResource[paymentrails.Recipient](ctx, c.httpClient, path, constants.KeyRecipient, "recipient")
}

// Update implements paymentrails.RecipientsClient.Update.
func (c *RecipientsClient) Update(ctx context.Context, recipientID string, request *paymentrails.RecipientUpdateRequest) (bool, error) {
	if request == nil {
		return false, paymentrails.ErrRequestNil
	}

	path, err := itemPath(constants.APIPathRecipients+"/%s", recipientID)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return false, fmt.Errorf("updating recipient: %w", err)
	}

	return acknowledge(resp, "recipient update")
}

// Delete implements paymentrails.RecipientsClient.Delete.
// The server archives the recipient rather than removing it.
func (c *RecipientsClient) Delete(ctx context.Context, recipientID string) (bool, error) {
	path, err := itemPath(constants.APIPathRecipients+"/%s", recipientID)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return false, fmt.Errorf("deleting recipient: %w", err)
	}

	return acknowledge(resp, "recipient delete")
}

// All implements paymentrails.RecipientsClient.All.
func (c *RecipientsClient) All(ctx context.Context, params *paymentrails.QueryParams) (*paymentrails.Collection[paymentrails.Recipient], error) {
	return listResources[paymentrails.Recipient](ctx, c.httpClient, constants.APIPathRecipients, constants.KeyRecipients, params)
}

// Payments implements paymentrails.RecipientsClient.Payments.
func (c *RecipientsClient) Payments(ctx context.Context, recipientID string, params *paymentrails.QueryParams) (*paymentrails.Collection[paymentrails.Payment], error) {
	path, err := itemPath(constants.APIPathRecipients+"/%s/payments", recipientID)
	if err != nil {
		return nil, err
	}

	return listResources[paymentrails.Payment](ctx, c.httpClient, path, constants.KeyPayments, params)
}
