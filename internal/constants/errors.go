package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials       = errors.New("no API credentials configured, use 'prails config set-credentials' to add them")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrUnknownEnvironment  = errors.New("unknown environment")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Required field errors.
var (
	ErrRecipientRequired = errors.New("--recipient flag is required")
	ErrAmountRequired    = errors.New("either --source-amount or --target-amount is required")
	ErrNothingToUpdate   = errors.New("no fields to update")
)
