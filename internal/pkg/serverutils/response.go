package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) *Response[T] {
	return &Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error       string `json:"error"`
	Details     string `json:"details,omitempty"`
	RawResponse string `json:"rawResponse,omitempty"`
}
