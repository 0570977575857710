package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/moviehub/movies-api/internal/token"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	err       error
	calls     int
	recipient string
}

func (f *fakeNotifier) NotifyLogin(ctx context.Context, recipient, username string) error {
	f.calls++
	f.recipient = recipient
	return f.err
}

func newTestTokenCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec(token.Config{
		SecretKey:  "auth-handler-test-secret",
		ServerHost: "http://localhost:8080",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return c
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest("POST", "/api/v1/authentication/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func newLoginRouter(h *AuthHandler) *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r.PathPrefix("/api/v1/authentication").Subrouter())
	return r
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	codec := newTestTokenCodec(t)
	notifier := &fakeNotifier{}
	handler := NewAuthHandler(codec, nil, notifier, nil, true, zap.NewNop())

	w := httptest.NewRecorder()
	newLoginRouter(handler).ServeHTTP(w, loginRequest("alice", "whatever"))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if notifier.calls != 1 {
		t.Errorf("Expected 1 notification, got %d", notifier.calls)
	}
	if notifier.recipient != "alice" {
		t.Errorf("Expected recipient 'alice', got %q", notifier.recipient)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	// The token pair must sit at the top level of the body, not inside
	// a wrapper object.
	if _, wrapped := raw["data"]; wrapped {
		t.Fatal("Expected tokens at the top level, found a 'data' wrapper")
	}

	var body struct {
		AccessToken  string `json:"access_token"`
		TokenType    string `json:"token_type"`
		RefreshToken string `json:"refresh_token"`
	}
	for key, field := range map[string]*string{
		"access_token":  &body.AccessToken,
		"token_type":    &body.TokenType,
		"refresh_token": &body.RefreshToken,
	} {
		msg, ok := raw[key]
		if !ok {
			t.Fatalf("Expected %q at the top level of the body", key)
		}
		if err := json.Unmarshal(msg, field); err != nil {
			t.Fatalf("Failed to decode %q: %v", key, err)
		}
	}
	if body.TokenType != "bearer" {
		t.Errorf("Expected token_type 'bearer', got %q", body.TokenType)
	}
	if body.AccessToken == "" || body.RefreshToken == "" {
		t.Fatal("Expected both tokens in response")
	}

	claims, err := codec.Decode(body.AccessToken)
	if err != nil {
		t.Fatalf("Access token did not decode: %v", err)
	}
	if claims.Subject != "username:alice" {
		t.Errorf("Expected subject 'username:alice', got %q", claims.Subject)
	}
	if claims.Issuer != "http://localhost:8080" {
		t.Errorf("Expected issuer 'http://localhost:8080', got %q", claims.Issuer)
	}
	if claims.Audience != "http://localhost:8080/authentication/login" {
		t.Errorf("Expected login audience, got %q", claims.Audience)
	}
}

func TestLogin_MailDeliveryFailure(t *testing.T) {
	t.Parallel()

	codec := newTestTokenCodec(t)
	notifier := &fakeNotifier{err: errors.New("smtp connection refused")}
	handler := NewAuthHandler(codec, nil, notifier, nil, true, zap.NewNop())

	w := httptest.NewRecorder()
	newLoginRouter(handler).ServeHTTP(w, loginRequest("alice", "whatever"))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
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
	if body.Message != "Mail could not be delivered." {
		t.Errorf("Expected message 'Mail could not be delivered.', got %q", body.Message)
	}
}

func TestLogin_MailDeliveryOptional(t *testing.T) {
	t.Parallel()

	codec := newTestTokenCodec(t)
	notifier := &fakeNotifier{err: errors.New("smtp connection refused")}
	handler := NewAuthHandler(codec, nil, notifier, nil, false, zap.NewNop())

	w := httptest.NewRecorder()
	newLoginRouter(handler).ServeHTTP(w, loginRequest("alice", "whatever"))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 when delivery is optional, got %d", resp.StatusCode)
	}
}

func TestLogin_MissingUsername(t *testing.T) {
	t.Parallel()

	codec := newTestTokenCodec(t)
	handler := NewAuthHandler(codec, nil, &fakeNotifier{}, nil, true, zap.NewNop())

	w := httptest.NewRecorder()
	newLoginRouter(handler).ServeHTTP(w, loginRequest("", "whatever"))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestLogin_NoNotifierConfigured(t *testing.T) {
	t.Parallel()

	codec := newTestTokenCodec(t)
	handler := NewAuthHandler(codec, nil, nil, nil, true, zap.NewNop())

	w := httptest.NewRecorder()
	newLoginRouter(handler).ServeHTTP(w, loginRequest("alice", "whatever"))

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected status 400 when delivery is required but unconfigured, got %d", resp.StatusCode)
	}
}
