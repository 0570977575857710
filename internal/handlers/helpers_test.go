package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moviehub/movies-api/internal/apperror"
)

func TestRespondAppError_KindMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperror.New(apperror.KindValidation, "bad input"), http.StatusBadRequest},
		{"not found", apperror.New(apperror.KindNotFound, "missing"), http.StatusNotFound},
		{"unauthenticated", apperror.New(apperror.KindUnauthenticated, "no token"), http.StatusUnauthorized},
		{"delivery failed", apperror.New(apperror.KindDeliveryFailed, "Mail could not be delivered."), http.StatusBadRequest},
		{"conflict", apperror.New(apperror.KindConflict, "duplicate"), http.StatusConflict},
		{"internal", apperror.New(apperror.KindInternal, "boom"), http.StatusInternalServerError},
		{"unrecognized", errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			respondAppError(w, tc.err)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, resp.StatusCode)
			}

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body.Success {
				t.Error("Expected success=false")
			}
		})
	}
}

func TestSanitizeErrorMessage_CapsLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 300)
	got := sanitizeErrorMessage(long)
	if len(got) != 203 {
		t.Errorf("Expected 200 chars plus ellipsis, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("Expected truncated message to end with ellipsis")
	}

	if got := sanitizeErrorMessage("short"); got != "short" {
		t.Errorf("Expected short message unchanged, got %q", got)
	}
}
