package paymentrails

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Resource is implemented by every API object that carries an identity.
type Resource interface {
	ResourceID() string
}

// nestedResources is implemented by resources that embed other identified resources.
type nestedResources interface {
	NestedResources() []Resource
}

// Timestamp is a time that decodes empty strings and null as the zero time.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		t.Time = time.Time{}

		return nil
	}

	var parsed time.Time

	err := json.Unmarshal(data, &parsed)
	if err != nil {
		return fmt.Errorf("parsing timestamp %s: %w", data, err)
	}

	t.Time = parsed

	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// Address is a postal address with an optional phone number.
type Address struct {
	Street1    string `json:"street1,omitempty"    yaml:"street1,omitempty"`
	Street2    string `json:"street2,omitempty"    yaml:"street2,omitempty"`
	City       string `json:"city,omitempty"       yaml:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty" yaml:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"    yaml:"country,omitempty"`
	Region     string `json:"region,omitempty"     yaml:"region,omitempty"`
	Phone      string `json:"phone,omitempty"      yaml:"phone,omitempty"`
}

// Reference points at another resource by id.
type Reference struct {
	ID string `json:"id" yaml:"id"`
}

// Meta is the pagination block of a list response.
type Meta struct {
	Page    int `json:"page"    yaml:"page"`
	Pages   int `json:"pages"   yaml:"pages"`
	Records int `json:"records" yaml:"records"`
}
