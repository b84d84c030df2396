// Package auth verifies HS256 bearer JWTs issued by the identity service.
// The requester id is the token subject.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTTL    = 24 * time.Hour
	defaultLeeway = 30 * time.Second
)

var ErrInvalidToken = errors.New("invalid token")

type ctxKey struct{}

type Signer struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	parser *jwt.Parser
}

type Option func(*Signer)

// WithTTL sets the lifetime of tokens issued by Token.
func WithTTL(d time.Duration) Option {
	return func(s *Signer) {
		s.ttl = d
	}
}

// WithLeeway sets the clock skew tolerated when checking exp, nbf and iat.
func WithLeeway(d time.Duration) Option {
	return func(s *Signer) {
		s.leeway = d
	}
}

func New(secret string, opts ...Option) *Signer {
	s := &Signer{
		secret: []byte(secret),
		ttl:    defaultTTL,
		leeway: defaultLeeway,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
	)

	return s
}

// Token issues a token for userID that expires after the configured TTL.
func (s *Signer) Token(userID string) (string, error) {
	const op = "auth.Signer.Token"

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%s: failed to sign token: %w", op, err)
	}

	return signed, nil
}

// Verify returns the subject of a valid, unexpired HS256 token.
func (s *Signer) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims

	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token by calling
// unauthorized, and stores the user id in the request context otherwise.
func (s *Signer) Middleware(unauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorized(w, r)
				return
			}

			userID, err := s.Verify(strings.TrimSpace(token))
			if err != nil {
				unauthorized(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the user id stored by Middleware.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok
}
