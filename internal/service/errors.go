package service

import "errors"

// Refusals surfaced to the transport layer. Engine code never panics; every
// failure mode is an inspectable error value.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidState       = errors.New("invalid state")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrShippingRequired   = errors.New("shipping info incomplete")
	ErrMethodUnavailable  = errors.New("shipping method not available")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidBackup      = errors.New("invalid backup data structure")
)
