package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
)

type upstreamError struct{ Err error }

func (e *upstreamError) Error() string { return "upstream: " + e.Err.Error() }
func (e *upstreamError) Unwrap() error { return e.Err }

func TestClassify(t *testing.T) {
	sentinel := goerrors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "deadline", err: fmt.Errorf("list: %w", context.DeadlineExceeded), want: "timeout"},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "app error code", err: fmt.Errorf("get user: %w", apperrors.NotFound("user not found")), want: "not_found"},
		{name: "typed error wrapping sentinel", err: fmt.Errorf("search: %w", &upstreamError{Err: sentinel}), want: "errors_upstreamerror"},
		{name: "bare sentinel", err: sentinel, want: "errors_errorstring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
