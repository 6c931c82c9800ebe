// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer and the authentication middleware.
package sec

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peopledesk/peopledesk/internal/platform/constants"
)

// ErrInvalidToken is the single outcome for every token validation failure.
//
// # Why one error?
//
// Bad signature, malformed structure, expired, and missing subject are
// deliberately indistinguishable to callers. Differentiating them would leak
// validation internals to an attacker probing the token format.
var ErrInvalidToken = errors.New("sec: invalid token")

// AccessClaims represents the payload embedded inside an access token.
//
// The subject carries the principal's username; Scopes carry role names and
// are informational only — authorization always consults the store-resolved
// principal, never the token.
type AccessClaims struct {
	jwt.RegisteredClaims

	Scopes []string `json:"scopes,omitempty"`
}

// TokenService issues and validates access tokens signed with a single
// process-wide symmetric key (HMAC-SHA256).
//
// The secret is loaded once at startup; a missing secret is a fatal startup
// condition handled in config, never a per-request error. Given the key, both
// operations are pure computation with no side effects, so a single instance
// is safe for unsynchronized concurrent use.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret []byte, issuer string) *TokenService {
	return &TokenService{secret: secret, issuer: issuer}
}

// Issue creates a signed access token for the given subject.
//
// # Parameters
//   - subject: The principal's username ('sub' claim).
//   - scopes: Role names to embed, informational only.
//   - timeToLive: Validity window; zero or negative uses the 60-minute default.
//
// # Returns
//   - A compact signed JWT string, or an error if signing fails.
func (service *TokenService) Issue(subject string, scopes []string, timeToLive time.Duration) (string, error) {
	if timeToLive <= 0 {
		timeToLive = constants.AccessTokenTTL
	}

	currentTime := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Scopes: scopes,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", errors.Join(errors.New("sec: failed to sign token"), err)
	}

	return signedToken, nil
}

// Validate checks signature integrity and expiry in one atomic step and
// extracts the claims.
//
// Every failure mode returns [ErrInvalidToken]: the caller learns nothing
// about which check failed.
func (service *TokenService) Validate(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// A token without a subject cannot be resolved to a principal.
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
