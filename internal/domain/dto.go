package domain

import "time"

// TransformRequest is the payload for a text transformation.
type TransformRequest struct {
	Text        string        `json:"text" validate:"required,min=1"`
	ContentType ContentType   `json:"contentType" validate:"required"`
	Tone        string        `json:"tone,omitempty" validate:"omitempty,max=50"`
	Audience    string        `json:"audience,omitempty" validate:"omitempty,max=100"`
	Parameters  *AIParameters `json:"aiParameters,omitempty"`
}

// TransformResponse carries a generated variant back to the client.
// Metadata echoes the generation options used so the client can pass
// them along unchanged when saving the result.
type TransformResponse struct {
	OriginalContent      string          `json:"originalContent"`
	TransformedContent   string          `json:"transformedContent"`
	ContentType          ContentType     `json:"contentType"`
	OriginalWordCount    int             `json:"originalWordCount"`
	TransformedWordCount int             `json:"transformedWordCount"`
	Metadata             ContentMetadata `json:"metadata,omitempty"`
	Model                string          `json:"model,omitempty"`
}

// CreateContentRequest is the payload for saving a transformation to history.
type CreateContentRequest struct {
	Title              string          `json:"title" validate:"required,min=1,max=255"`
	OriginalContent    string          `json:"originalContent" validate:"required,min=1"`
	TransformedContent string          `json:"transformedContent" validate:"required,min=1"`
	ContentType        ContentType     `json:"contentType" validate:"required"`
	Metadata           ContentMetadata `json:"metadata,omitempty"`
}

// ContentDTO is the API representation of a saved content entry.
type ContentDTO struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"userId"`
	Title                string          `json:"title"`
	OriginalContent      string          `json:"originalContent"`
	TransformedContent   string          `json:"transformedContent"`
	ContentType          ContentType     `json:"contentType"`
	OriginalWordCount    int             `json:"originalWordCount"`
	TransformedWordCount int             `json:"transformedWordCount"`
	Metadata             ContentMetadata `json:"metadata,omitempty"`
	CreatedAt            string          `json:"createdAt"`
	UpdatedAt            string          `json:"updatedAt"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"omitempty,max=100"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a token and the authenticated user.
type AuthResponse struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expiresAt"`
	User      UserDTO `json:"user"`
}

// UserDTO is the API representation of a user.
type UserDTO struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Theme        Theme  `json:"theme"`
	CreatedAt    string `json:"createdAt"`
}

// UpdateProfileRequest is the payload for PATCH /api/profile.
// Nil fields leave the current value unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50,alphanum"`
	FullName *string `json:"fullName,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Theme    *Theme  `json:"theme,omitempty"`
}

// ProfileImageResponse carries the stored image location and the updated user.
type ProfileImageResponse struct {
	ImageURL string  `json:"imageUrl"`
	User     UserDTO `json:"user"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// FormatTimestamp renders a time in the ISO-8601 format used by the API.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
