package service

import "errors"

// Common service errors
var (
	// ErrUserContextRequired is returned when user context is not available
	ErrUserContextRequired = errors.New("user context required")

	// ErrInvalidCredentials is returned when username or password is wrong
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when registering with an existing username
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrEmailTaken is returned when registering with an existing email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrContentNotFound is returned when a content entry is not found
	ErrContentNotFound = errors.New("content not found")

	// ErrContentNotOwned is returned when accessing content owned by another user
	ErrContentNotOwned = errors.New("content does not belong to current user")

	// ErrInvalidContentType is returned when an unknown content type is provided
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidParameters is returned when generation parameters are out of range
	ErrInvalidParameters = errors.New("invalid generation parameters")

	// ErrInvalidMetadata is returned when metadata keys don't match the content type
	ErrInvalidMetadata = errors.New("invalid metadata for content type")

	// ErrInvalidTheme is returned when an unknown theme is provided
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrGenerationFailed is returned when the AI provider fails
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrUnsupportedImageType is returned for non-image profile uploads
	ErrUnsupportedImageType = errors.New("unsupported image type")
)
