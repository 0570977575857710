package models

import "time"

// TokenClaims is the claim set carried by access and refresh tokens.
// Both token kinds are built from the same base payload; only the
// expiration differs.
type TokenClaims struct {
	Issuer            string    `json:"iss"`
	Subject           string    `json:"sub"` // "username:" + username
	Audience          string    `json:"aud"`
	ExpiresAt         time.Time `json:"exp"`
	NotBefore         time.Time `json:"nbf"`
	IssuedAt          time.Time `json:"iat"`
	TokenID           string    `json:"jti"`
	PreferredUsername string    `json:"preferred_username"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TokenPair is the login response body.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
}
