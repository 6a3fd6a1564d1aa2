package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserType = "user_type"
)

// MinPasswordLength is the minimum accepted password length on registration
const MinPasswordLength = 8

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TokenTTLHours is the lifetime of issued bearer tokens
const TokenTTLHours = 24
