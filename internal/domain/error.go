package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")

	// Payment / reconciliation errors
	ErrValidation         = errors.New("validation failed")
	ErrConfiguration      = errors.New("gateway credentials not configured")
	ErrGateway            = errors.New("payment gateway error")
	ErrItemNotPurchasable = errors.New("item is not purchasable")

	// Infra-level errors surfaced by repositories
	ErrOperationFailed    = errors.New("database operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid executor context")

	// Chat errors
	ErrRateLimited = errors.New("too many requests")
)
