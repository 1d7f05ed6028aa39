package services

import "errors"

var (
	ErrInvalidListing      = errors.New("invalid listing")
	ErrNotOwner            = errors.New("listing belongs to another user")
	ErrMachineUnavailable  = errors.New("machine is not available for booking")
	ErrInvalidDuration     = errors.New("rental duration must be at least one day")
	ErrInvalidStartDate    = errors.New("start date must not be in the past")
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrInvalidTransition   = errors.New("booking cannot move to that status")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrSessionNotFound     = errors.New("chat session not found")
	ErrEmptyMessage        = errors.New("message text is required")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnsupportedFile     = errors.New("only image files can be analysed")
	ErrAnalysisNotFound    = errors.New("analysis not found")
)
