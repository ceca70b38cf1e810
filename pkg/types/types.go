package types

// GenerateRequest is the payload POSTed to the remote generation endpoint.
// The wire contract is intentionally minimal: the prompt is the only field
// the endpoint receives.
type GenerateRequest struct {
	// Prompt text to generate a completion for.
	Prompt string `json:"prompt"`
}

// Output is one generated candidate inside an endpoint response.
type Output struct {
	// Generated text, possibly padded with whitespace.
	Text string `json:"text"`
}

// GenerateResponse is the endpoint's success payload. Only Outputs[0].Text
// is consumed; any additional fields are ignored.
type GenerateResponse struct {
	Outputs []Output `json:"outputs"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	Error string `json:"error"`
	// HTTP status code.
	Code int `json:"code"`
}
