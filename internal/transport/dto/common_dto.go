package dto

// MessageResponse is the {success, message} envelope used by the form endpoints.
type MessageResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// ValidationErrorResponse carries field-level errors keyed by field name.
type ValidationErrorResponse struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors"`
}

// ErrorResponse is the {error} envelope used by the JSON API endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DisplayDateFormat renders dates as "January 02, 2006".
const DisplayDateFormat = "January 02, 2006"
