package model

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
	Hint    string `json:"hint,omitempty"`
}
