// Package types defines the JSON envelopes every endpoint responds with,
// except the create-user endpoint, which keeps its own historical shape.
package types

// SuccessEnvelope wraps successful payloads under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body. Details is populated only for codes
// whose metadata allows leaking them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
