package paymentrails

import (
	"github.com/shopspring/decimal"
)

// RecipientType distinguishes people from companies.
type RecipientType string

// Recipient types.
const (
	RecipientTypeIndividual RecipientType = "individual"
	RecipientTypeBusiness   RecipientType = "business"
)

// RecipientStatus is driven by the server.
type RecipientStatus string

// Recipient statuses.
const (
	RecipientStatusIncomplete RecipientStatus = "incomplete"
	RecipientStatusActive     RecipientStatus = "active"
	RecipientStatusArchived   RecipientStatus = "archived"
	RecipientStatusBlocked    RecipientStatus = "blocked"
	RecipientStatusSuspended  RecipientStatus = "suspended"
)

// Recipient is a payee that can receive payments.
type Recipient struct {
	ID               string             `json:"id"                         yaml:"id"`
	ReferenceID      string             `json:"referenceId,omitempty"      yaml:"reference_id,omitempty"`
	Type             RecipientType      `json:"type"                       yaml:"type"`
	FirstName        string             `json:"firstName,omitempty"        yaml:"first_name,omitempty"`
	LastName         string             `json:"lastName,omitempty"         yaml:"last_name,omitempty"`
	Name             string             `json:"name,omitempty"             yaml:"name,omitempty"`
	Email            string             `json:"email"                      yaml:"email"`
	Status           RecipientStatus    `json:"status"                     yaml:"status"`
	Language         string             `json:"language,omitempty"         yaml:"language,omitempty"`
	ComplianceStatus string             `json:"complianceStatus,omitempty" yaml:"compliance_status,omitempty"`
	GravatarURL      string             `json:"gravatarUrl,omitempty"      yaml:"gravatar_url,omitempty"`
	RouteType        string             `json:"routeType,omitempty"        yaml:"route_type,omitempty"`
	RouteMinimum     decimal.Decimal    `json:"routeMinimum"               yaml:"route_minimum"`
	Address          *Address           `json:"address,omitempty"          yaml:"address,omitempty"`
	Accounts         []RecipientAccount `json:"accounts,omitempty"         yaml:"accounts,omitempty"`
	CreatedAt        Timestamp          `json:"createdAt"                  yaml:"created_at"`
	UpdatedAt        Timestamp          `json:"updatedAt"                  yaml:"updated_at"`
}

// ResourceID implements Resource.
func (r Recipient) ResourceID() string {
	return r.ID
}

// NestedResources returns the embedded accounts so they are checked on decode.
func (r Recipient) NestedResources() []Resource {
	nested := make([]Resource, 0, len(r.Accounts))
	for _, account := range r.Accounts {
		nested = append(nested, account)
	}

	return nested
}

// PrimaryAccount returns the account flagged as primary, if any.
func (r Recipient) PrimaryAccount() (RecipientAccount, bool) {
	for _, account := range r.Accounts {
		if account.Primary {
			return account, true
		}
	}

	return RecipientAccount{}, false
}

// RecipientAccount is a payout destination owned by exactly one recipient.
type RecipientAccount struct {
	ID                string `json:"id"                          yaml:"id"`
	RecipientID       string `json:"recipientId,omitempty"       yaml:"recipient_id,omitempty"`
	Primary           bool   `json:"primary"                     yaml:"primary"`
	Type              string `json:"type"                        yaml:"type"`
	Currency          string `json:"currency"                    yaml:"currency"`
	Country           string `json:"country,omitempty"           yaml:"country,omitempty"`
	IBAN              string `json:"iban,omitempty"              yaml:"iban,omitempty"`
	AccountNum        string `json:"accountNum,omitempty"        yaml:"account_num,omitempty"`
	BankID            string `json:"bankId,omitempty"            yaml:"bank_id,omitempty"`
	BranchID          string `json:"branchId,omitempty"          yaml:"branch_id,omitempty"`
	BankName          string `json:"bankName,omitempty"          yaml:"bank_name,omitempty"`
	SwiftBIC          string `json:"swiftBic,omitempty"          yaml:"swift_bic,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty" yaml:"account_holder_name,omitempty"`
	EmailAddress      string `json:"emailAddress,omitempty"      yaml:"email_address,omitempty"`
}

// ResourceID implements Resource.
func (a RecipientAccount) ResourceID() string {
	return a.ID
}

// AddressRequest is the address block of recipient create/update requests.
type AddressRequest struct {
	Street1    *string `json:"street1,omitempty"`
	Street2    *string `json:"street2,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
	Region     *string `json:"region,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

// RecipientCreateRequest represents a request to create a recipient.
type RecipientCreateRequest struct {
	Type        RecipientType   `json:"type"`
	FirstName   string          `json:"firstName,omitempty"`
	LastName    string          `json:"lastName,omitempty"`
	Name        string          `json:"name,omitempty"`
	Email       string          `json:"email"`
	ReferenceID string          `json:"referenceId,omitempty"`
	Language    string          `json:"language,omitempty"`
	Address     *AddressRequest `json:"address,omitempty"`
}

// RecipientUpdateRequest represents a partial update; nil fields are left unchanged.
type RecipientUpdateRequest struct {
	Type        *RecipientType  `json:"type,omitempty"`
	FirstName   *string         `json:"firstName,omitempty"`
	LastName    *string         `json:"lastName,omitempty"`
	Name        *string         `json:"name,omitempty"`
	Email       *string         `json:"email,omitempty"`
	ReferenceID *string         `json:"referenceId,omitempty"`
	Language    *string         `json:"language,omitempty"`
	Address     *AddressRequest `json:"address,omitempty"`
}

// RecipientAccountCreateRequest represents a request to add an account to a recipient.
type RecipientAccountCreateRequest struct {
	Type              string `json:"type"`
	Currency          string `json:"currency"`
	Primary           *bool  `json:"primary,omitempty"`
	Country           string `json:"country,omitempty"`
	IBAN              string `json:"iban,omitempty"`
	AccountNum        string `json:"accountNum,omitempty"`
	BankID            string `json:"bankId,omitempty"`
	BranchID          string `json:"branchId,omitempty"`
	SwiftBIC          string `json:"swiftBic,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	EmailAddress      string `json:"emailAddress,omitempty"`
}

// RecipientAccountUpdateRequest represents a partial account update.
type RecipientAccountUpdateRequest struct {
	Primary           *bool   `json:"primary,omitempty"`
	Currency          *string `json:"currency,omitempty"`
	IBAN              *string `json:"iban,omitempty"`
	AccountNum        *string `json:"accountNum,omitempty"`
	BankID            *string `json:"bankId,omitempty"`
	BranchID          *string `json:"branchId,omitempty"`
	SwiftBIC          *string `json:"swiftBic,omitempty"`
	AccountHolderName *string `json:"accountHolderName,omitempty"`
	EmailAddress      *string `json:"emailAddress,omitempty"`
}
