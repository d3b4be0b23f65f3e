package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"missing credential", ErrMissingCredential, KindMissingCredential},
		{"wrapped missing credential", fmt.Errorf("failed to send message: %w", ErrMissingCredential), KindMissingCredential},
		{"bad request", genai.APIError{Code: 400, Message: "API key not valid"}, KindRejected},
		{"unauthorized", genai.APIError{Code: 401}, KindRejected},
		{"forbidden", genai.APIError{Code: 403}, KindRejected},
		{"unknown model", genai.APIError{Code: 404, Message: "model not found"}, KindRejected},
		{"rate limited", genai.APIError{Code: 429}, KindTransient},
		{"server error", genai.APIError{Code: 500}, KindTransient},
		{"wrapped api error", fmt.Errorf("failed to synthesize speech: %w", genai.APIError{Code: 503}), KindTransient},
		{"deadline", context.DeadlineExceeded, KindTransient},
		{"cancelled", context.Canceled, KindTransient},
		{"plain network error", errors.New("dial tcp: connection refused"), KindTransient},
		{"closed client", ErrClosed, KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
