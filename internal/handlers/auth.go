package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/moviehub/movies-api/internal/apperror"
	logpkg "github.com/moviehub/movies-api/internal/logger"
	"github.com/moviehub/movies-api/internal/mailer"
	"github.com/moviehub/movies-api/internal/models"
	"github.com/moviehub/movies-api/internal/queue"
	"github.com/moviehub/movies-api/internal/token"
	"github.com/moviehub/movies-api/internal/validation"
	"go.uber.org/zap"
)

// mailDeliveryFailedMessage is the client-facing message when the login
// notification cannot be delivered.
const mailDeliveryFailedMessage = "Mail could not be delivered."

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}

// AllowAllVerifier accepts any credentials. There is no user store; the
// login endpoint authenticates the claim shape, not the password.
type AllowAllVerifier struct{}

// Verify always succeeds.
func (AllowAllVerifier) Verify(ctx context.Context, username, password string) error {
	return nil
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	codec        *token.Codec
	verifier     CredentialVerifier
	notifier     mailer.LoginNotifier
	jobs         queue.JobQueue
	mailRequired bool
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler. notifier and jobs may be nil
// when mail delivery is not configured.
func NewAuthHandler(codec *token.Codec, verifier CredentialVerifier, notifier mailer.LoginNotifier, jobs queue.JobQueue, mailRequired bool, logger *zap.Logger) *AuthHandler {
	if verifier == nil {
		verifier = AllowAllVerifier{}
	}
	return &AuthHandler{
		codec:        codec,
		verifier:     verifier,
		notifier:     notifier,
		jobs:         jobs,
		mailRequired: mailRequired,
		logger:       logger,
	}
}

// RegisterRoutes registers authentication routes on the given router
// The router should already have the /authentication prefix
func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/login", h.Login).Methods("POST")
}

// Login issues an access and refresh token pair for the submitted username.
// Both tokens are built from one base claim set; only the expiration differs.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid form body")
		return
	}

	username := validation.SanitizeText(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "username is required")
		return
	}

	ctx := r.Context()
	if err := h.verifier.Verify(ctx, username, password); err != nil {
		respondAppError(w, apperror.Wrap(apperror.KindUnauthenticated, "Invalid credentials", err))
		return
	}

	claims := h.codec.NewClaims(username)
	accessToken, err := h.codec.IssueAccessToken(claims)
	if err != nil {
		h.logger.Error("access_token_issue_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to issue token")
		return
	}
	refreshToken, err := h.codec.IssueRefreshToken(claims)
	if err != nil {
		h.logger.Error("refresh_token_issue_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to issue token")
		return
	}

	if err := h.notifyLogin(ctx, username); err != nil {
		h.logger.Warn("login_notification_failed",
			zap.String("username", logpkg.SanitizeString(username, logpkg.MaxGeneralStringLength)),
			zap.Error(err),
		)
		if h.mailRequired {
			respondAppError(w, apperror.Wrap(apperror.KindDeliveryFailed, mailDeliveryFailedMessage, err))
			return
		}
	}

	// The token pair is the response body itself, not wrapped in the
	// success envelope, so clients read access_token at the top level.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.TokenPair{
		AccessToken:  accessToken,
		TokenType:    "bearer",
		RefreshToken: refreshToken,
	}); err != nil {
		h.logger.Error("login_response_encode_failed", zap.Error(err))
	}
}

// notifyLogin delivers the login notification. The username doubles as the
// recipient address since there is no user store. When a job queue is
// configured the delivery is handed to the worker; otherwise it is sent
// inline.
func (h *AuthHandler) notifyLogin(ctx context.Context, username string) error {
	if h.jobs != nil {
		return h.jobs.Enqueue(ctx, queue.NewJob(queue.JobTypeLoginNotice, username, username))
	}
	if h.notifier != nil {
		return h.notifier.NotifyLogin(ctx, username, username)
	}
	return apperror.New(apperror.KindDeliveryFailed, mailDeliveryFailedMessage)
}
