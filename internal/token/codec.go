package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/moviehub/movies-api/internal/models"
	"go.uber.org/zap"
)

// LoginPath is appended to the issuer URL to form the token audience.
const LoginPath = "/authentication/login"

// subjectPrefix is the required prefix of the sub claim.
const subjectPrefix = "username:"

// Sentinel errors returned by Decode. Callers treat any of them as
// "no claims"; the distinction exists for logs and tests.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrInvalidAudience  = errors.New("audience claim is incorrect")
	ErrInvalidIssuer    = errors.New("issuer claim is incorrect")
	ErrInvalidSubject   = errors.New("subject claim is incorrect")
	ErrInvalidToken     = errors.New("token is invalid")
)

// Config configures a Codec.
type Config struct {
	SecretKey  string
	Algorithm  string // HS256 (default), HS384 or HS512
	ServerHost string // issuer; audience is ServerHost + LoginPath
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// VerifySubject enables the sub-format check on decode. Off by
	// default to match the deployed behavior, but configurable so the
	// choice is auditable.
	VerifySubject bool
}

// Codec builds and parses signed claim sets. Access and refresh tokens
// share one encode routine and differ only in TTL. A Codec is immutable
// and safe for concurrent use.
type Codec struct {
	secret        []byte
	alg           jwa.SignatureAlgorithm
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	verifySubject bool
	log           *zap.Logger
}

// NewCodec creates a Codec from cfg.
func NewCodec(cfg Config, log *zap.Logger) (*Codec, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("token: secret key is required")
	}
	if cfg.ServerHost == "" {
		return nil, errors.New("token: server host is required")
	}
	alg, err := signatureAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	issuer := strings.TrimSuffix(cfg.ServerHost, "/")
	return &Codec{
		secret:        []byte(cfg.SecretKey),
		alg:           alg,
		issuer:        issuer,
		audience:      issuer + LoginPath,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		verifySubject: cfg.VerifySubject,
		log:           log,
	}, nil
}

func signatureAlgorithm(name string) (jwa.SignatureAlgorithm, error) {
	switch name {
	case "", "HS256":
		return jwa.HS256, nil
	case "HS384":
		return jwa.HS384, nil
	case "HS512":
		return jwa.HS512, nil
	default:
		return "", fmt.Errorf("token: unsupported algorithm %q", name)
	}
}

// Issuer returns the configured issuer claim value.
func (c *Codec) Issuer() string { return c.issuer }

// Audience returns the configured audience claim value.
func (c *Codec) Audience() string { return c.audience }

// NewClaims builds the base claim set for username. The expiration is
// left zero; Encode injects it from the requested TTL.
func (c *Codec) NewClaims(username string) models.TokenClaims {
	now := time.Now().UTC().Truncate(time.Second)
	return models.TokenClaims{
		Issuer:            c.issuer,
		Subject:           subjectPrefix + username,
		Audience:          c.audience,
		NotBefore:         now.Add(-time.Second),
		IssuedAt:          now,
		TokenID:           uuid.NewString(),
		PreferredUsername: username,
		UpdatedAt:         now,
	}
}

// Encode signs claims into a compact token, overwriting the expiration
// with now + ttl. It is a pure computation apart from reading the clock.
func (c *Codec) Encode(claims models.TokenClaims, ttl time.Duration) (string, error) {
	exp := time.Now().UTC().Add(ttl).Truncate(time.Second)
	tok, err := jwt.NewBuilder().
		Issuer(claims.Issuer).
		Subject(claims.Subject).
		Audience([]string{claims.Audience}).
		Expiration(exp).
		NotBefore(claims.NotBefore).
		IssuedAt(claims.IssuedAt).
		JwtID(claims.TokenID).
		Claim("preferred_username", claims.PreferredUsername).
		Claim("updated_at", claims.UpdatedAt.Format(time.RFC3339)).
		Build()
	if err != nil {
		return "", fmt.Errorf("build claim set: %w", err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(c.alg, c.secret))
	if err != nil {
		return "", fmt.Errorf("sign claim set: %w", err)
	}
	return string(signed), nil
}

// IssueAccessToken signs claims with the short access-token TTL.
func (c *Codec) IssueAccessToken(claims models.TokenClaims) (string, error) {
	return c.Encode(claims, c.accessTTL)
}

// IssueRefreshToken signs the same base claims with the refresh TTL, so
// both tokens of a login carry identical identity claims.
func (c *Codec) IssueRefreshToken(claims models.TokenClaims) (string, error) {
	return c.Encode(claims, c.refreshTTL)
}

// Decode verifies the token signature and claims and returns the claim
// set. On any failure it returns nil and a classified sentinel error;
// the caller decides how to surface the absence of claims. Failure
// reasons are logged for diagnostics only.
func (c *Codec) Decode(raw string) (*models.TokenClaims, error) {
	parsed, err := jwt.Parse([]byte(raw), jwt.WithKey(c.alg, c.secret), jwt.WithValidate(false))
	if err != nil {
		c.log.Debug("token_parse_failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	err = jwt.Validate(parsed,
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
	)
	if err != nil {
		classified := classifyValidationError(err)
		c.log.Debug("token_validation_failed", zap.Error(err))
		return nil, classified
	}

	claims := claimsFromToken(parsed)
	if c.verifySubject && !strings.HasPrefix(claims.Subject, subjectPrefix) {
		c.log.Debug("token_subject_rejected", zap.String("sub", claims.Subject))
		return nil, ErrInvalidSubject
	}
	return claims, nil
}

func classifyValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired()):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenNotYetValid()):
		return fmt.Errorf("%w: %v", ErrTokenNotYetValid, err)
	case errors.Is(err, jwt.ErrInvalidAudience()):
		return fmt.Errorf("%w: %v", ErrInvalidAudience, err)
	case errors.Is(err, jwt.ErrInvalidIssuer()):
		return fmt.Errorf("%w: %v", ErrInvalidIssuer, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}

func claimsFromToken(tok jwt.Token) *models.TokenClaims {
	claims := &models.TokenClaims{
		Issuer:    tok.Issuer(),
		Subject:   tok.Subject(),
		ExpiresAt: tok.Expiration(),
		NotBefore: tok.NotBefore(),
		IssuedAt:  tok.IssuedAt(),
		TokenID:   tok.JwtID(),
	}
	if aud := tok.Audience(); len(aud) > 0 {
		claims.Audience = aud[0]
	}
	if v, ok := tok.Get("preferred_username"); ok {
		if s, ok := v.(string); ok {
			claims.PreferredUsername = s
		}
	}
	if v, ok := tok.Get("updated_at"); ok {
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				claims.UpdatedAt = t
			}
		}
	}
	return claims
}
