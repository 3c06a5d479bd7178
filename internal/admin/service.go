package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"velora/internal/token"
	dErrors "velora/pkg/domain-errors"
	"velora/pkg/platform/sentinel"
)

const minPasswordLength = 6

// Service owns panel staff identity. Unlike customer login, admin login
// distinguishes an unregistered email (404) from a wrong password (401)
// to match what the panel UI displays.
type Service struct {
	admins     Store
	tokens     *token.Service
	tokenTTL   time.Duration
	bcryptCost int
}

func NewService(admins Store, tokens *token.Service, tokenTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		admins:     admins,
		tokens:     tokens,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a staff account with the admin role. Accounts live
// in their own record set, separate from storefront customers.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Profile, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if name == "" || email == "" || input.Password == "" {
		return Profile{}, dErrors.New(dErrors.CodeBadRequest, "Name, email and password are required!")
	}
	if len(input.Password) < minPasswordLength {
		return Profile{}, dErrors.New(dErrors.CodeBadRequest, "Password must be at least 6 characters!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "Registration failed!")
	}

	admin := Admin{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Profile{}, dErrors.New(dErrors.CodeConflict, "Admin already registered!")
		}
		return Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "Registration failed!")
	}
	return admin.Profile(), nil
}

// Login verifies the credentials and issues a role-bearing token.
func (s *Service) Login(ctx context.Context, input LoginInput) (Profile, string, error) {
	admin, err := s.admins.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Profile{}, "", dErrors.New(dErrors.CodeNotFound, "Admin not registered!")
		}
		return Profile{}, "", dErrors.Wrap(err, dErrors.CodeInternal, "Login failed!")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) != nil {
		return Profile{}, "", dErrors.New(dErrors.CodeUnauthorized, "Email/Password is incorrect!")
	}

	tok, err := s.tokens.Issue(admin.ID.String(), token.Claims{
		Email: admin.Email,
		Role:  admin.Role,
	}, s.tokenTTL)
	if err != nil {
		return Profile{}, "", dErrors.Wrap(err, dErrors.CodeInternal, "Login failed!")
	}
	return admin.Profile(), tok, nil
}
