package types

// DataResponse wraps a created record the way the intake endpoints answer.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// MessageResponse is the answer of the file forwarding endpoint.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
