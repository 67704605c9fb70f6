// Package api defines the JSON envelopes shared by every HTTP handler.
package api

import "time"

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is the body of plain acknowledgements ("Updated", "Deleted").
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is the body returned with 201 Created.
type CreatedResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
