package domain

// Error types aligned with RFC 7807 problem categories.
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeConflict     = "conflict"
	ErrorTypeInternal     = "internal_error"
	ErrorTypeBadRequest   = "bad_request"
)

// APIError is a structured error body for non-2xx responses.
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// GetValidationMessage returns a generic message for a validator tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Invalid value"
}

// ValidationMessages maps validator tags to human readable messages.
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"min":      "Value is too short or too small",
	"max":      "Value is too long or too large",
	"gte":      "Value is below the allowed minimum",
	"lte":      "Value is above the allowed maximum",
	"alphanum": "Only letters and digits are allowed",
	"uuid":     "Must be a valid UUID",
}
