package session

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// Tokens signs and verifies the session cookie value.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	SessionID string `json:"sid"`
	jwtlib.RegisteredClaims
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue mints a token for a fresh session id.
func (t *Tokens) Issue() (token string, sessionID string, err error) {
	sessionID = uuid.NewString()
	token, err = t.Sign(sessionID)
	return token, sessionID, err
}

// Sign returns a token for an existing session id.
func (t *Tokens) Sign(sessionID string) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse validates a token and returns its session id.
func (t *Tokens) Parse(tokenStr string) (string, error) {
	claims, err := t.ParseClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.SessionID, nil
}

// NeedsRefresh reports whether claims are past half their lifetime.
func (t *Tokens) NeedsRefresh(claims *Claims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return time.Until(claims.ExpiresAt.Time) < t.ttl/2
}

// ParseClaims validates a token and returns its claims.
func (t *Tokens) ParseClaims(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(tok *jwtlib.Token) (any, error) {
		return t.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
