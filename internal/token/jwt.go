// Package token issues and verifies the HS256 bearer tokens used by both
// the storefront and the admin panel. Verification walks an ordered list
// of secrets so rotated (or differently-issued) tokens stay valid.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "velora/pkg/domain-errors"
)

// Claims are the claims embedded in every token. Subject carries the
// principal id; the profile fields are denormalized for the UI.
type Claims struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service signs with the first secret and verifies against all of them.
type Service struct {
	secrets [][]byte
	issuer  string
}

func NewService(secrets []string, issuer string) *Service {
	keys := make([][]byte, 0, len(secrets))
	for _, s := range secrets {
		keys = append(keys, []byte(s))
	}
	return &Service{secrets: keys, issuer: issuer}
}

// Issue signs a token for the given subject with the primary secret.
func (s *Service) Issue(subject string, claims Claims, ttl time.Duration) (string, error) {
	if len(s.secrets) == 0 {
		return "", errors.New("no signing secret configured")
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    s.issuer,
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secrets[0])
}

// Verify parses and validates a token, trying each configured secret in
// sequence. A well-formed, unexpired token signed with an unknown secret
// is invalid.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	var lastErr error
	for _, secret := range s.secrets {
		claims, err := s.verifyWith(tokenString, secret)
		if err == nil {
			return claims, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no verification secret configured")
	}
	if errors.Is(lastErr, jwt.ErrTokenExpired) {
		return nil, dErrors.Wrap(lastErr, dErrors.CodeUnauthorized, "token has expired")
	}
	return nil, dErrors.Wrap(lastErr, dErrors.CodeUnauthorized, "invalid token")
}

func (s *Service) verifyWith(tokenString string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
