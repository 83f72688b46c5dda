// Package auth implements the shared-PIN gate that protects destructive
// operations. A correct PIN is exchanged for a short-lived unlock token.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
)

const ScopeInventoryWrite = "inventory:write"

var (
	ErrInvalidPIN   = errors.New("invalid PIN")
	ErrInvalidToken = errors.New("invalid or expired unlock token")
)

type SettingsReader interface {
	GetSettings(ctx context.Context) (*settings.Settings, error)
}

// Claims is the payload of an unlock token.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type Gate struct {
	settings SettingsReader
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*Gate)

func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func NewGate(settings SettingsReader, secret string, ttl time.Duration, opts ...Option) *Gate {
	g := &Gate{
		settings: settings,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Verify compares pin with the stored PIN.
func (g *Gate) Verify(ctx context.Context, pin string) error {
	st, err := g.settings.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(pin), []byte(st.PIN)) != 1 {
		return ErrInvalidPIN
	}

	return nil
}

// Unlock verifies pin and issues a signed token valid for the gate's TTL.
func (g *Gate) Unlock(ctx context.Context, pin string) (string, time.Time, error) {
	if err := g.Verify(ctx, pin); err != nil {
		return "", time.Time{}, err
	}

	now := g.now()
	expiresAt := now.Add(g.ttl)

	claims := &Claims{
		Scope: ScopeInventoryWrite,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return token, expiresAt, nil
}

// Validate checks the token signature, expiry and scope.
func (g *Gate) Validate(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Scope != ScopeInventoryWrite {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
