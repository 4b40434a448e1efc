// Package service provides the credential verification used by the authentication stage.
//
// Tokens are HS256-signed JWTs whose subject is the user id. Credential issuance is
// owned by an external identity service; IssueToken exists for operators and tests.
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/attractionops/platform/internal/errors"
)

// ErrInvalidToken indicates the token failed signature or claim validation.
var ErrInvalidToken = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token")

// clockSkew is the leeway applied to time-based claims.
const clockSkew = 5 * time.Second

// TokenService verifies bearer credentials.
type TokenService interface {
	// ValidateToken checks the signature, issuer and expiry of token and returns the
	// subject as a user id. Any failure returns ErrInvalidToken.
	ValidateToken(token string) (uuid.UUID, error)

	// IssueToken signs a token for userID valid for ttl.
	IssueToken(userID uuid.UUID, ttl time.Duration) (string, error)
}

// jwtTokenService implements TokenService with HS256 JWTs.
type jwtTokenService struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// ValidateToken implements TokenService.
func (s *jwtTokenService) ValidateToken(token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// IssueToken implements TokenService.
func (s *jwtTokenService) IssueToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	if userID == uuid.Nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}
	if ttl <= 0 {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "ttl must be greater than zero")
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// NewTokenService creates a TokenService for the given HMAC secret and issuer.
func NewTokenService(secret, issuer string) (TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is not configured")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockSkew),
	)

	return &jwtTokenService{
		secret: []byte(secret),
		issuer: issuer,
		parser: parser,
	}, nil
}
