// Package auth signs participants in with email and password and issues
// HS256 session tokens backed by the sessions table.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/apperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/participant"
	"github.com/warwickallen/allen-app-challenge-2026/internal/storage/session"
)

const issuer = "allen-app-challenge"

// Compared against when the email is unknown so both failure paths cost one bcrypt check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-password"), bcrypt.DefaultCost)

// SignInResult is a freshly issued session.
type SignInResult struct {
	Token       string
	ExpiresAt   time.Time
	Participant *participant.Participant
}

type Authenticator struct {
	participants participant.IReader
	sessions     session.ISessionTable
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

var _ access.TokenResolver = (*Authenticator)(nil)

func NewAuthenticator(participants participant.IReader, sessions session.ISessionTable, secret string, ttl time.Duration) (*Authenticator, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	return &Authenticator{
		participants: participants,
		sessions:     sessions,
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// HashPassword returns the bcrypt hash stored for a participant.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", apperr.Validation("password is required")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// SignIn verifies the credentials and starts a session.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	p, err := a.participants.FindByEmail(ctx, email)
	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, apperr.Unauthenticated("invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("find participant: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	now := a.now()
	s, err := a.sessions.Insert(ctx, &session.SessionCreate{
		ParticipantID: p.ID,
		ExpiresAt:     now.Add(a.ttl),
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   p.ID.String(),
		ID:        s.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &SignInResult{Token: token, ExpiresAt: s.ExpiresAt, Participant: p}, nil
}

// ResolveToken returns the identity of a valid, unrevoked session token.
func (a *Authenticator) ResolveToken(ctx context.Context, token string) (*access.Identity, error) {
	sessionID, participantID, err := a.parse(token, true)
	if err != nil {
		return nil, err
	}

	s, err := a.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, apperr.Unauthenticated("session not found")
	}
	if s.ParticipantID != participantID || !s.Active(a.now()) {
		return nil, apperr.Unauthenticated("session expired or revoked")
	}

	p, err := a.participants.FindByID(ctx, participantID)
	if err != nil {
		return nil, apperr.Unauthenticated("participant not found")
	}
	return p.Identity(), nil
}

// SignOut revokes the session behind token. Revoking an expired or already
// revoked session succeeds.
func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	sessionID, _, err := a.parse(token, false)
	if err != nil {
		return err
	}
	if err := a.sessions.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (a *Authenticator) parse(token string, validateClaims bool) (sessionID, participantID uuid.UUID, err error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.Unauthenticated("invalid token: %v", err)
	}

	sessionID, err = uuid.FromString(claims.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.Unauthenticated("invalid token id")
	}
	participantID, err = uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.Unauthenticated("invalid token subject")
	}
	return sessionID, participantID, nil
}
