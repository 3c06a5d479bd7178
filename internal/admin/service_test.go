package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"velora/internal/token"
	dErrors "velora/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *token.Service) {
	t.Helper()
	tokens := token.NewService([]string{"test-secret"}, "velora-test")
	svc := NewService(NewInMemoryStore(), tokens, time.Hour, WithBcryptCost(bcrypt.MinCost))
	return svc, tokens
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	profile, err := svc.Register(ctx, RegisterInput{Name: "Staff", Email: "Staff@Example.com", Password: "secret-1"})
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", profile.Email)
	assert.Equal(t, RoleAdmin, profile.Role)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Name: "Other", Email: "staff@example.com", Password: "secret-2"})
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Email: "x@example.com", Password: "secret-1"})
		assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err))

		_, err = svc.Register(ctx, RegisterInput{Name: "X", Email: "x@example.com", Password: "123"})
		assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})
}

func TestLogin(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "Staff", Email: "staff@example.com", Password: "secret-1"})
	require.NoError(t, err)

	t.Run("unregistered email is not found", func(t *testing.T) {
		_, _, err := svc.Login(ctx, LoginInput{Email: "yok@example.com", Password: "secret-1"})
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
		assert.Equal(t, "Admin not registered!", dErrors.MessageOf(err))
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, _, err := svc.Login(ctx, LoginInput{Email: "staff@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
		assert.Equal(t, "Email/Password is incorrect!", dErrors.MessageOf(err))
	})

	t.Run("success issues role-bearing token", func(t *testing.T) {
		profile, bearer, err := svc.Login(ctx, LoginInput{Email: "staff@example.com", Password: "secret-1"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, profile.ID)

		claims, err := tokens.Verify(bearer)
		require.NoError(t, err)
		assert.Equal(t, registered.ID.String(), claims.Subject)
		assert.Equal(t, RoleAdmin, claims.Role)
	})
}
