package handler

// errorResponse documents the error envelope rendered by the central
// HTTP error handler; the @Failure annotations reference it.
type errorResponse struct {
	Error string `json:"error"`
}
