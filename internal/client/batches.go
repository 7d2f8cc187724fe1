package client

import (
	"context"
	"fmt"

	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/internal/http"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
)

const (
	batchPath           = constants.APIPathBatches + "/%s"
	batchPaymentsPath   = batchPath + "/payments"
	batchPaymentPath    = batchPaymentsPath + "/%s"
	batchSummaryPath    = batchPath + "/summary"
	batchQuotePath      = batchPath + "/generate-quote"
	batchProcessingPath = batchPath + "/start-processing"
)

// BatchesClient implements paymentrails.BatchesClient.
type BatchesClient struct {
	httpClient *http.Client
}

// NewBatchesClient creates a new batches client.
func NewBatchesClient(httpClient *http.Client) *BatchesClient {
	return &BatchesClient{
		httpClient: httpClient,
	}
}

// Create implements paymentrails.BatchesClient.Create.
// Payments listed in the request are added to the new batch in the same call.
func (c *BatchesClient) Create(ctx context.Context, request *paymentrails.BatchCreateRequest) (*paymentrails.Batch, error) {
	if request == nil {
		return nil, paymentrails.ErrRequestNil
	}

	return postResource[paymentrails.Batch](ctx, c.httpClient, constants.APIPathBatches, constants.KeyBatch, "creating batch", request)
}

// Find implements paymentrails.BatchesClient.Find.
func (c *BatchesClient) Find(ctx context.Context, batchID string) (*paymentrails.Batch, error) {
	path, err := itemPath(batchPath, batchID)
	if err != nil {
		return nil, err
	}

	return getResource[paymentrails.Batch](ctx, c.httpClient, path, constants.KeyBatch, "batch")
}

// Update implements paymentrails.BatchesClient.Update.
func (c *BatchesClient) Update(ctx context.Context, batchID string, request *paymentrails.BatchUpdateRequest) (bool, error) {
	if request == nil {
		return false, paymentrails.ErrRequestNil
	}

	path, err := itemPath(batchPath, batchID)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return false, fmt.Errorf("updating batch: %w", err)
	}

	return acknowledge(resp, "batch update")
}

// Delete implements paymentrails.BatchesClient.Delete.
func (c *BatchesClient) Delete(ctx context.Context, batchID string) (bool, error) {
	path, err := itemPath(batchPath, batchID)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return false, fmt.Errorf("deleting batch: %w", err)
	}

	return acknowledge(resp, "batch delete")
}

// All implements paymentrails.BatchesClient.All.
func (c *BatchesClient) All(ctx context.Context, params *paymentrails.QueryParams) (*paymentrails.Collection[paymentrails.Batch], error) {
	return listResources[paymentrails.Batch](ctx, c.httpClient, constants.APIPathBatches, constants.KeyBatches, params)
}

// CreatePayment implements paymentrails.BatchesClient.CreatePayment.
func (c *BatchesClient) CreatePayment(ctx context.Context, batchID string, request *paymentrails.PaymentCreateRequest) (*paymentrails.Payment, error) {
	if request == nil {
		return nil, paymentrails.ErrRequestNil
	}

	path, err := itemPath(batchPaymentsPath, batchID)
	if err != nil {
		return nil, err
	}

	return postResource[paymentrails.Payment](ctx, c.httpClient, path, constants.KeyPayment, "creating payment", request)
}

// FindPayment implements paymentrails.BatchesClient.FindPayment.
func (c *BatchesClient) FindPayment(ctx context.Context, batchID, paymentID string) (*paymentrails.Payment, error) {
	path, err := itemPath(batchPaymentPath, batchID, paymentID)
	if err != nil {
		return nil, err
	}

	return getResource[paymentrails.Payment](ctx, c.httpClient, path, constants.KeyPayment, "payment")
}

// UpdatePayment implements paymentrails.BatchesClient.UpdatePayment.
func (c *BatchesClient) UpdatePayment(ctx context.Context, batchID, paymentID string, request *paymentrails.PaymentUpdateRequest) (bool, error) {
	if request == nil {
		return false, paymentrails.ErrRequestNil
	}

	path, err := itemPath(batchPaymentPath, batchID, paymentID)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return false, fmt.Errorf("updating payment: %w", err)
	}

	return acknowledge(resp, "payment update")
}

// DeletePayment implements paymentrails.BatchesClient.DeletePayment.
func (c *BatchesClient) DeletePayment(ctx context.Context, batchID, paymentID string) (bool, error) {
	path, err := itemPath(batchPaymentPath, batchID, paymentID)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return false, fmt.Errorf("deleting payment: %w", err)
	}

	return acknowledge(resp, "payment delete")
}

// Payments implements paymentrails.BatchesClient.Payments.
func (c *BatchesClient) Payments(ctx context.Context, batchID string, params *paymentrails.QueryParams) (*paymentrails.Collection[paymentrails.Payment], error) {
	path, err := itemPath(batchPaymentsPath, batchID)
	if err != nil {
		return nil, err
	}

	return listResources[paymentrails.Payment](ctx, c.httpClient, path, constants.KeyPayments, params)
}

// Summary implements paymentrails.BatchesClient.Summary.
func (c *BatchesClient) Summary(ctx context.Context, batchID string) (*paymentrails.BatchSummary, error) {
	path, err := itemPath(batchSummaryPath, batchID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting batch summary: %w", err)
	}

	summary, err := paymentrails.DecodeObject[paymentrails.BatchSummary](resp.Body, constants.KeyBatchSummary)
	if err != nil {
		return nil, fmt.Errorf("parsing batch summary response: %w", err)
	}

	if summary.ID == "" {
		summary.ID = batchID
	}

	return summary, nil
}

// GenerateQuote implements paymentrails.BatchesClient.GenerateQuote.
func (c *BatchesClient) GenerateQuote(ctx context.Context, batchID string) (*paymentrails.Quote, error) {
	path, err := itemPath(batchQuotePath, batchID)
	if err != nil {
		return nil, err
	}

	return postResource[paymentrails.Quote](ctx, c.httpClient, path, constants.KeyBatch, "generating batch quote", nil)
}

// StartProcessing implements paymentrails.BatchesClient.StartProcessing.
func (c *BatchesClient) StartProcessing(ctx context.Context, batchID string) (*paymentrails.ProcessingResult, error) {
	path, err := itemPath(batchProcessingPath, batchID)
	if err != nil {
		return nil, err
	}

	return postResource[paymentrails.ProcessingResult](ctx, c.httpClient, path, constants.KeyBatch, "starting batch processing", nil)
}
