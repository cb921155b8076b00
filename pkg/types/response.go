// Package types holds the JSON envelopes every API response is wrapped in.
// Controllers never marshal bare payloads; success bodies live under "data"
// and failures under "error" so clients can branch on shape alone.
package types

// SuccessEnvelope wraps a 2xx payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// Success builds the envelope for a payload.
func Success(data any) SuccessEnvelope {
	return SuccessEnvelope{Data: data}
}

// APIError is the public face of a failed request: a stable machine code,
// a human-readable message, and optional field-level details.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Failure builds the envelope for an error body.
func Failure(code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{Error: APIError{Code: code, Message: message, Details: details}}
}
