package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrNoSession          = fmt.Errorf("session not found or expired")

	// Persistence errors
	ErrNotFound   = fmt.Errorf("record not found")
	ErrUserExists = fmt.Errorf("user already provisioned")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
