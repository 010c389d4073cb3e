package service

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInstallmentsInvalid = errors.New("installments total must be at least 1")
	ErrPriceNegative       = errors.New("unit price cannot be negative")
	ErrTooManyRequests     = errors.New("too many requests")
)
