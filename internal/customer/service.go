package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"velora/internal/platform/metrics"
	"velora/internal/token"
	dErrors "velora/pkg/domain-errors"
	"velora/pkg/platform/sentinel"
)

const minPasswordLength = 6

// Service owns customer identity rules: registration, login, and
// profile lookup. Login failures are deliberately indistinguishable so
// callers cannot enumerate accounts.
type Service struct {
	users      Store
	tokens     *token.Service
	tokenTTL   time.Duration
	bcryptCost int
	metrics    *metrics.Metrics
}

func NewService(users Store, tokens *token.Service, tokenTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		users:      users,
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

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer account and returns the public profile.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Profile, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := normalizeEmail(input.Email)

	if firstName == "" || lastName == "" || email == "" || input.Password == "" {
		return Profile{}, dErrors.New(dErrors.CodeBadRequest, "Ad, soyad, e-posta ve şifre zorunludur.")
	}
	if len(input.Password) < minPasswordLength {
		return Profile{}, dErrors.New(dErrors.CodeBadRequest, "Şifre en az 6 karakter olmalıdır.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "Kayıt oluşturulamadı.")
	}

	now := time.Now()
	user := User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = &phone
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Profile{}, dErrors.New(dErrors.CodeConflict, "Bu e-posta zaten kayıtlı.")
		}
		return Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "Kayıt oluşturulamadı.")
	}

	s.metrics.IncrementUsersRegistered()
	return user.Profile(), nil
}

// Login verifies the credentials and issues a bearer token. Unknown
// email and wrong password both yield the same generic message.
func (s *Service) Login(ctx context.Context, input LoginInput) (Profile, string, error) {
	genericErr := dErrors.New(dErrors.CodeUnauthorized, "E-posta veya şifre hatalı.")

	user, err := s.users.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Profile{}, "", genericErr
		}
		return Profile{}, "", dErrors.Wrap(err, dErrors.CodeInternal, "Giriş yapılamadı.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return Profile{}, "", genericErr
	}

	tok, err := s.tokens.Issue(user.ID.String(), token.Claims{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, s.tokenTTL)
	if err != nil {
		return Profile{}, "", dErrors.Wrap(err, dErrors.CodeInternal, "Giriş yapılamadı.")
	}
	return user.Profile(), tok, nil
}

// Profile returns the public profile for an authenticated customer.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (Profile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Profile{}, dErrors.New(dErrors.CodeNotFound, "Kullanıcı bulunamadı.")
		}
		return Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "Profil alınamadı.")
	}
	return user.Profile(), nil
}

// Profiles resolves the public profiles for a set of customer ids.
// Missing ids are skipped, not errors.
func (s *Service) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Profile, error) {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Kullanıcılar alınamadı.")
	}
	out := make(map[uuid.UUID]Profile, len(users))
	for _, u := range users {
		out[u.ID] = u.Profile()
	}
	return out, nil
}
