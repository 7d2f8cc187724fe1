package paymentrails

import (
	"github.com/shopspring/decimal"
)

// BatchStatus is driven by the server.
type BatchStatus string

// Batch statuses.
const (
	BatchStatusOpen       BatchStatus = "open"
	BatchStatusPending    BatchStatus = "pending"
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusComplete   BatchStatus = "complete"
	BatchStatusFailed     BatchStatus = "failed"
)

// PaymentStatus is driven by the server.
type PaymentStatus string

// Payment statuses.
const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusProcessed  PaymentStatus = "processed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusReturned   PaymentStatus = "returned"
)

// Batch groups payments that are quoted and processed together.
type Batch struct {
	ID             string          `json:"id"                       yaml:"id"`
	SourceCurrency string          `json:"sourceCurrency,omitempty" yaml:"source_currency,omitempty"`
	Description    string          `json:"description"              yaml:"description"`
	Status         BatchStatus     `json:"status"                   yaml:"status"`
	Amount         decimal.Decimal `json:"amount"                   yaml:"amount"`
	Currency       string          `json:"currency,omitempty"       yaml:"currency,omitempty"`
	TotalPayments  int             `json:"totalPayments"            yaml:"total_payments"`
	QuoteExpiredAt Timestamp       `json:"quoteExpiredAt"           yaml:"quote_expired_at"`
	SentAt         Timestamp       `json:"sentAt"                   yaml:"sent_at"`
	CompletedAt    Timestamp       `json:"completedAt"              yaml:"completed_at"`
	CreatedAt      Timestamp       `json:"createdAt"                yaml:"created_at"`
	UpdatedAt      Timestamp       `json:"updatedAt"                yaml:"updated_at"`
}

// ResourceID implements Resource.
func (b Batch) ResourceID() string {
	return b.ID
}

// Quote is the batch snapshot returned after quote generation, carrying exchange-rated amounts.
type Quote struct {
	Batch
}

// ProcessingResult is the batch snapshot returned when processing starts.
type ProcessingResult struct {
	Batch
}

// RecipientRef identifies the payee of a payment. The server may expand it with profile fields.
type RecipientRef struct {
	ID          string `json:"id"                    yaml:"id"`
	ReferenceID string `json:"referenceId,omitempty" yaml:"reference_id,omitempty"`
	Email       string `json:"email,omitempty"       yaml:"email,omitempty"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
}

// Payment is a single transfer instruction inside a batch.
type Payment struct {
	ID             string          `json:"id"                       yaml:"id"`
	Batch          *Reference      `json:"batch,omitempty"          yaml:"batch,omitempty"`
	Recipient      RecipientRef    `json:"recipient"                yaml:"recipient"`
	Status         PaymentStatus   `json:"status"                   yaml:"status"`
	SourceAmount   decimal.Decimal `json:"sourceAmount"             yaml:"source_amount"`
	SourceCurrency string          `json:"sourceCurrency,omitempty" yaml:"source_currency,omitempty"`
	TargetAmount   decimal.Decimal `json:"targetAmount"             yaml:"target_amount"`
	TargetCurrency string          `json:"targetCurrency,omitempty" yaml:"target_currency,omitempty"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"             yaml:"exchange_rate"`
	Fees           decimal.Decimal `json:"fees"                     yaml:"fees"`
	RecipientFees  decimal.Decimal `json:"recipientFees"            yaml:"recipient_fees"`
	Memo           string          `json:"memo,omitempty"           yaml:"memo,omitempty"`
	ExternalID     string          `json:"externalId,omitempty"     yaml:"external_id,omitempty"`
	ProcessedAt    Timestamp       `json:"processedAt"              yaml:"processed_at"`
	CreatedAt      Timestamp       `json:"createdAt"                yaml:"created_at"`
	UpdatedAt      Timestamp       `json:"updatedAt"                yaml:"updated_at"`
}

// ResourceID implements Resource.
func (p Payment) ResourceID() string {
	return p.ID
}

// BatchID returns the id of the owning batch, or "" when the server omitted it.
func (p Payment) BatchID() string {
	if p.Batch == nil {
		return ""
	}

	return p.Batch.ID
}

// MethodSummary aggregates the payments of a batch that share a payout method.
type MethodSummary struct {
	Count int             `json:"count" yaml:"count"`
	Value decimal.Decimal `json:"value" yaml:"value"`
	Fees  decimal.Decimal `json:"fees"  yaml:"fees"`
	Net   decimal.Decimal `json:"net"   yaml:"net"`
}

// BatchSummary aggregates a batch by payout method.
type BatchSummary struct {
	ID      string                   `json:"id,omitempty"    yaml:"id,omitempty"`
	Methods map[string]MethodSummary `json:"methods"         yaml:"methods"`
	Total   *MethodSummary           `json:"total,omitempty" yaml:"total,omitempty"`
}

// PaymentCount returns the number of payments across all methods.
func (s BatchSummary) PaymentCount() int {
	total := 0
	for _, method := range s.Methods {
		total += method.Count
	}

	return total
}

// PaymentCreateRequest describes a payment. Set SourceAmount, or TargetAmount with TargetCurrency.
type PaymentCreateRequest struct {
	Recipient      Reference        `json:"recipient"`
	SourceAmount   *decimal.Decimal `json:"sourceAmount,omitempty"`
	TargetAmount   *decimal.Decimal `json:"targetAmount,omitempty"`
	TargetCurrency string           `json:"targetCurrency,omitempty"`
	Memo           string           `json:"memo,omitempty"`
	ExternalID     string           `json:"externalId,omitempty"`
}

// PaymentUpdateRequest represents a partial payment update.
type PaymentUpdateRequest struct {
	SourceAmount   *decimal.Decimal `json:"sourceAmount,omitempty"`
	TargetAmount   *decimal.Decimal `json:"targetAmount,omitempty"`
	TargetCurrency *string          `json:"targetCurrency,omitempty"`
	Memo           *string          `json:"memo,omitempty"`
	ExternalID     *string          `json:"externalId,omitempty"`
}

// BatchCreateRequest represents a request to create a batch, optionally with its first payments.
type BatchCreateRequest struct {
	SourceCurrency string                 `json:"sourceCurrency"`
	Description    string                 `json:"description,omitempty"`
	Payments       []PaymentCreateRequest `json:"payments,omitempty"`
}

// BatchUpdateRequest represents a partial batch update.
type BatchUpdateRequest struct {
	Description    *string `json:"description,omitempty"`
	SourceCurrency *string `json:"sourceCurrency,omitempty"`
}
