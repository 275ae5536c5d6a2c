package handlers

// ErrorResponse is the wire shape of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the wire shape of delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}
