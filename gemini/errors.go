package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// Sentinel errors surfaced by the chat and speech clients.
var (
	ErrMissingCredential = errors.New("no Gemini API key configured")
	ErrClosed            = errors.New("client is closed")
	ErrNoAudio           = errors.New("response carried no audio payload")
)

// ErrorKind categorizes a failure by its user-visible cause, not by
// exception type. Classification happens once, here at the network
// boundary, so callers never inspect response shapes themselves.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindMissingCredential
	KindRejected  // invalid credential or model identifier: reconfigure, don't retry
	KindTransient // network or 5xx-class failure: retry manually
)

// KindOf classifies an error returned by this package.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrMissingCredential) {
		return KindMissingCredential
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 400, apiErr.Code == 401, apiErr.Code == 403, apiErr.Code == 404:
			return KindRejected
		default:
			return KindTransient
		}
	}

	// Context cancellation, DNS failures, connection resets and anything
	// else the transport produces all read as transient to the user.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTransient
	}
	return KindTransient
}
