package models

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message           string `json:"message"`
	CardCode          string `json:"cardCode"`
	SystemInstruction string `json:"systemInstruction"`
}

// GenerateResponse is returned by POST /api/v1/names
type GenerateResponse struct {
	*NameResponse
	RequestID string `json:"request_id"`
	Remaining *int64 `json:"remaining,omitempty"`
}

// CardStatusResponse reports remaining uses for a card key
type CardStatusResponse struct {
	Remaining int64 `json:"remaining"`
	Exhausted bool  `json:"exhausted"`
}

// StyleInfo describes one selectable naming style
type StyleInfo struct {
	Name      string `json:"name"`
	Directive string `json:"directive"`
}

// ErrorResponse represents an error response. Error carries the text shown
// to the end user; Code is the stable machine-readable reason.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
