package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moviehub/movies-api/internal/request"
	"github.com/moviehub/movies-api/internal/token"
	"go.uber.org/zap"
)

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec(token.Config{
		SecretKey:  "auth-middleware-test-secret",
		ServerHost: "http://localhost:8080",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return c
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	raw, err := codec.IssueAccessToken(codec.NewClaims("alice"))
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	var gotSubject string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := request.ClaimsFromContext(r)
		if claims != nil {
			gotSubject = claims.Subject
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/v1/movie/get-all-movies", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()

	Auth(codec)(handler).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if gotSubject != "username:alice" {
		t.Errorf("Expected claims in context with subject 'username:alice', got %q", gotSubject)
	}
}

func TestAuth_Rejections(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	expired, err := codec.Encode(codec.NewClaims("alice"), -time.Second)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expired},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be reached")
	})
	wrapped := Auth(codec)(handler)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/movie/get-all-movies", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", resp.StatusCode)
			}
		})
	}
}
