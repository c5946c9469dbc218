package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures: the service could not be
// reached at all. Callers can errors.Is on it to distinguish "server down"
// from "server said no".
var ErrUnavailable = errors.New("server unavailable")

// Message is the envelope's message field, which the service emits either
// as a plain string or as a structured object. The raw form is preserved;
// Text returns the human-readable string when there is one.
type Message struct {
	raw json.RawMessage
}

// NewMessage builds a plain-string message. Used by test doubles and the
// dev stub server.
func NewMessage(s string) Message {
	raw, _ := json.Marshal(s)
	return Message{raw: raw}
}

func (m *Message) UnmarshalJSON(b []byte) error {
	m.raw = append(m.raw[:0], b...)
	return nil
}

func (m Message) MarshalJSON() ([]byte, error) {
	if m.raw == nil {
		return []byte(`""`), nil
	}
	return m.raw, nil
}

// Text returns the message when it is a JSON string, "" otherwise.
func (m Message) Text() string {
	var s string
	if err := json.Unmarshal(m.raw, &s); err != nil {
		return ""
	}
	return s
}

// Envelope is the uniform response shape of the auth service:
// {success, message, data?, error?}.
type Envelope[T any] struct {
	Success bool    `json:"success"`
	Message Message `json:"message"`
	Data    *T      `json:"data,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// APIError is a structured remote failure: a non-2xx status or an envelope
// with success=false. Message follows the service's fallback chain
// (message, then error, then a generic string).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auth api: %s (status %d)", e.Message, e.StatusCode)
}

// failureMessage resolves the user-facing message for a failed envelope.
func failureMessage[T any](env *Envelope[T]) string {
	if msg := env.Message.Text(); msg != "" {
		return msg
	}
	if env.Error != nil && *env.Error != "" {
		return *env.Error
	}
	return "request failed"
}
