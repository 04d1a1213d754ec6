package model

import "strings"

// DefaultSource is used when a capture does not declare where it came from.
const DefaultSource = "unknown"

// CaptureRequest is one unit of raw text submitted for routing.
type CaptureRequest struct {
	Text      string  `json:"text" validate:"required,min=1"`
	Source    string  `json:"source,omitempty"`
	Timestamp *string `json:"timestamp,omitempty"`
}

// Normalize fills defaults for optional fields.
func (r CaptureRequest) Normalize() CaptureRequest {
	if strings.TrimSpace(r.Source) == "" {
		r.Source = DefaultSource
	}
	return r
}
