package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidCredential is returned when the provider rejects the API key.
	ErrInvalidCredential = errors.New("invalid API key")
	// ErrRateLimited is returned when the provider throttles the request.
	ErrRateLimited = errors.New("rate limit exceeded, please try again later")
	// ErrNoContent is returned when the response carries no text.
	ErrNoContent = errors.New("no content returned")
)

// TransportError is any other failure talking to a provider.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// classify maps a provider failure to ErrInvalidCredential, ErrRateLimited or
// a *TransportError. status is the HTTP status when the SDK exposed one, 0
// otherwise; the error message is consulted only when the status says nothing.
func classify(provider string, status int, err error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", provider, ErrInvalidCredential)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", provider, ErrRateLimited)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "authentication"):
		return fmt.Errorf("%s: %w", provider, ErrInvalidCredential)
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%s: %w", provider, ErrRateLimited)
	}
	return &TransportError{Provider: provider, Err: err}
}

// noContent reports an empty response from provider.
func noContent(provider string) error {
	return fmt.Errorf("%w from %s API", ErrNoContent, provider)
}
