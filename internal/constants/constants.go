package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// API environments and their base URLs.
const (
	EnvironmentProduction = "production"
	EnvironmentSandbox    = "sandbox"

	ProductionBaseURL = "https://api.paymentrails.com"
	SandboxBaseURL    = "https://api.sandbox.paymentrails.com"
)

// Request headers.
const (
	// HeaderTimestamp carries the unix timestamp covered by the request signature.
	HeaderTimestamp = "X-PR-Timestamp"

	// AuthorizationScheme prefixes the Authorization header value.
	AuthorizationScheme = "prsign"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "paymentrails-go"

	// ContentTypeJSON is the media type for request and response bodies.
	ContentTypeJSON = "application/json"
)

// Pagination and display limits.
const (
	// StandardPageSize is the common page size for CLI listings.
	StandardPageSize = 50

	// MaxPageSize is the largest page the API will return.
	MaxPageSize = 1000
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// API paths.
const (
	// APIPathRecipients for recipients endpoint.
	APIPathRecipients = "/v1/recipients"

	// APIPathBatches for batches endpoint.
	APIPathBatches = "/v1/batches"
)

// Response envelope keys.
const (
	KeyRecipient    = "recipient"
	KeyRecipients   = "recipients"
	KeyAccount      = "account"
	KeyAccounts     = "accounts"
	KeyBatch        = "batch"
	KeyBatches      = "batches"
	KeyPayment      = "payment"
	KeyPayments     = "payments"
	KeyBatchSummary = "batchSummary"
)
