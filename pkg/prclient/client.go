// Package prclient provides the main entry point for creating PaymentRails API clients
package prclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/paymentrails/paymentrails-go/internal/client"
	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid client config")

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// New creates a new PaymentRails API client.
//
// The config is copied and normalized; the caller's value is never modified.
func New(ctx context.Context, config *paymentrails.Config) (paymentrails.Client, error) {
	if config == nil {
		return nil, paymentrails.ErrConfigRequired
	}

	normalized := normalize(*config)

	err := validate.Struct(&normalized)
	if err != nil {
		return nil, validationError(err)
	}

	client, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithKeys creates a production client from an API key pair.
func NewWithKeys(ctx context.Context, apiKey, apiSecret string) (paymentrails.Client, error) {
	return New(ctx, &paymentrails.Config{
		APIKey:      apiKey,
		APISecret:   apiSecret,
		Environment: constants.EnvironmentProduction,
	})
}

// NewSandbox creates a client for the sandbox environment.
func NewSandbox(ctx context.Context, apiKey, apiSecret string) (paymentrails.Client, error) {
	return New(ctx, &paymentrails.Config{
		APIKey:      apiKey,
		APISecret:   apiSecret,
		Environment: constants.EnvironmentSandbox,
	})
}

func normalize(config paymentrails.Config) paymentrails.Config {
	config.APIKey = strings.TrimSpace(config.APIKey)
	config.APISecret = strings.TrimSpace(config.APISecret)
	config.Environment = strings.ToLower(strings.TrimSpace(config.Environment))
	config.BaseURL = strings.TrimSuffix(strings.TrimSpace(config.BaseURL), "/")

	return config
}

// validationError flattens validator failures into a single error wrapping ErrInvalidConfig.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describeFieldError(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got %q", fe.Field(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must not be negative", fe.Field())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
