package token

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "simple-actas"

// Jwt issues and parses HMAC-signed tokens for the login flow.
type Jwt struct {
	Secret         string
	CookieHttpOnly bool
	CookieSecure   bool
}

type Option func(*Jwt)

func WithCookieHttpOnly(httpOnly bool) Option {
	return func(j *Jwt) {
		j.CookieHttpOnly = httpOnly
	}
}

func WithCookieSecure(secure bool) Option {
	return func(j *Jwt) {
		j.CookieSecure = secure
	}
}

func NewJwtServiceOptions(secret string, opts ...Option) *Jwt {
	jwtSvc := &Jwt{Secret: secret}

	for _, opt := range opts {
		opt(jwtSvc)
	}

	return jwtSvc
}

// Claims carries the session principal alongside the registered claims.
type Claims struct {
	DisplayName string `json:"display_name,omitempty"`
	Username    string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

func (j Jwt) CreateTokenStr(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(j.Secret))
	if err != nil {
		slog.Error("Failed sign JWT claim string!", "err", err)
		return "", err
	}
	return ss, nil
}

func (j Jwt) ParseTokenStr(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.Secret), nil
	})
	if err != nil {
		slog.Error("Failed parse JWT string!", "err", err)
		return nil, err
	}
	return claims, nil
}

// IdmToken represents a token with its expiry time
type IdmToken struct {
	Token  string
	Expiry time.Time
}

func (j Jwt) newClaims(subject, username, displayName string, expiry time.Duration) Claims {
	now := time.Now().UTC()
	return Claims{
		DisplayName: displayName,
		Username:    username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
			Issuer:    issuer,
			Subject:   subject,
			ID:        uuid.New().String(),
			Audience:  []string{"public"},
		},
	}
}

// CreateAccessToken mints a short-lived access token for the principal
// identified by subject.
func (j Jwt) CreateAccessToken(subject, username, displayName string) (IdmToken, error) {
	claims := j.newClaims(subject, username, displayName, 5*time.Minute)
	accessToken, err := j.CreateTokenStr(claims)
	return IdmToken{Token: accessToken, Expiry: claims.ExpiresAt.Time}, err
}

// CreateRefreshToken mints a longer-lived refresh token for the principal
// identified by subject.
func (j Jwt) CreateRefreshToken(subject, username, displayName string) (IdmToken, error) {
	claims := j.newClaims(subject, username, displayName, 15*time.Minute)
	refreshToken, err := j.CreateTokenStr(claims)
	return IdmToken{Token: refreshToken, Expiry: claims.ExpiresAt.Time}, err
}
