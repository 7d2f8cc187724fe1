package paymentrails

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecipientsClient defines operations for recipients.
type RecipientsClient interface {
	Create(ctx context.Context, request *RecipientCreateRequest) (*Recipient, error)
	Find(ctx context.Context, recipientID string) (*Recipient, error)
	Update(ctx context.Context, recipientID string, request *RecipientUpdateRequest) (bool, error)
	Delete(ctx context.Context, recipientID string) (bool, error)
	All(ctx context.Context, params *QueryParams) (*Collection[Recipient], error)
	Payments(ctx context.Context, recipientID string, params *QueryParams) (*Collection[Payment], error)
}

// RecipientAccountsClient defines operations for the payout accounts of a recipient.
// Every call is scoped to the owning recipient.
type RecipientAccountsClient interface {
	Create(ctx context.Context, recipientID string, request *RecipientAccountCreateRequest) (*RecipientAccount, error)
	Find(ctx context.Context, recipientID, accountID string) (*RecipientAccount, error)
	Update(ctx context.Context, recipientID, accountID string, request *RecipientAccountUpdateRequest) (bool, error)
	Delete(ctx context.Context, recipientID, accountID string) (bool, error)
	All(ctx context.Context, recipientID string) (*Collection[RecipientAccount], error)
}

// BatchesClient defines operations for batches and the payments they hold.
type BatchesClient interface {
	Create(ctx context.Context, request *BatchCreateRequest) (*Batch, error)
	Find(ctx context.Context, batchID string) (*Batch, error)
	Update(ctx context.Context, batchID string, request *BatchUpdateRequest) (bool, error)
	Delete(ctx context.Context, batchID string) (bool, error)
	All(ctx context.Context, params *QueryParams) (*Collection[Batch], error)

	CreatePayment(ctx context.Context, batchID string, request *PaymentCreateRequest) (*Payment, error)
	FindPayment(ctx context.Context, batchID, paymentID string) (*Payment, error)
	UpdatePayment(ctx context.Context, batchID, paymentID string, request *PaymentUpdateRequest) (bool, error)
	DeletePayment(ctx context.Context, batchID, paymentID string) (bool, error)
	Payments(ctx context.Context, batchID string, params *QueryParams) (*Collection[Payment], error)

	Summary(ctx context.Context, batchID string) (*BatchSummary, error)
	GenerateQuote(ctx context.Context, batchID string) (*Quote, error)
	StartProcessing(ctx context.Context, batchID string) (*ProcessingResult, error)
}

// Client provides access to every resource client.
type Client interface {
	Recipients() RecipientsClient
	RecipientAccounts() RecipientAccountsClient
	Batches() BatchesClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a paymentrails.Client.
//
// # Endpoints
//
// Environment selects the API host ("production" or "sandbox"). BaseURL, when
// set, takes precedence and is used as-is apart from trimming a trailing slash.
//
// # Timeouts
//
// HTTPTimeout bounds each request including reading the response body.
// A context deadline shorter than HTTPTimeout wins. Either one surfacing
// yields an error matching ErrNetworkTimeout. Requests are never retried.
type Config struct {
	// APIKey: public key sent in the Authorization header.
	APIKey string `validate:"required"`
	// APISecret: private key used to sign each request. Never sent on the wire.
	APISecret string `validate:"required"`

	// Environment: "production" (default) or "sandbox".
	Environment string `validate:"omitempty,oneof=production sandbox"`
	// BaseURL: overrides the environment host, e.g. for a local stub server.
	BaseURL string `validate:"omitempty,url"`

	// HTTPTimeout: per-request timeout. Zero means 30 seconds.
	HTTPTimeout time.Duration `validate:"gte=0"`
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: logs every request and response at debug level when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger `validate:"-"`
	// MetricsRegisterer: when set, request counters and latency histograms are registered here.
	MetricsRegisterer prometheus.Registerer `validate:"-"`
}
