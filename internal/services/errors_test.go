package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"algoviz/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransport, "generate", "gemini", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"generate", "gemini", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestRetryableAndHTTPStatus(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
		status    int
	}{
		{"transport", services.Wrap(services.ErrTransport, "generate", "", "quota", nil), true, http.StatusBadGateway},
		{"validation", services.Wrap(services.ErrValidation, "parse", "", "no frames", nil), true, http.StatusBadGateway},
		{"input", services.Wrap(services.ErrInput, "request", "", "too long", nil), false, http.StatusBadRequest},
		{"timeout", services.Wrap(services.ErrTimeout, "generate", "", "deadline", context.DeadlineExceeded), false, http.StatusGatewayTimeout},
		{"configuration", services.Wrap(services.ErrConfiguration, "llm", "", "missing key", nil), false, http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("plain"), true, http.StatusInternalServerError},
		{"nil", nil, false, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Retryable(tt.err); got != tt.retryable {
				t.Fatalf("Retryable = %v, want %v", got, tt.retryable)
			}
			if got := services.HTTPStatus(tt.err); got != tt.status {
				t.Fatalf("HTTPStatus = %d, want %d", got, tt.status)
			}
		})
	}
}
