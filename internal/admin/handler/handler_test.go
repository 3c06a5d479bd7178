package handler

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"velora/internal/admin"
	"velora/internal/platform/middleware"
	"velora/internal/token"
	"velora/pkg/testutil"
)

func newAdminRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	tokens := token.NewService([]string{"test-secret"}, "velora-test")
	svc := admin.NewService(admin.NewInMemoryStore(), tokens, time.Hour,
		admin.WithBcryptCost(bcrypt.MinCost))
	h := New(svc, nil, time.Hour, false, logger)

	r := chi.NewRouter()
	h.RegisterPublic(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(tokens, logger))
		r.Get("/admin/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func registerStaff(t *testing.T, router http.Handler) {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/user/register", map[string]string{
		"name": "Staff", "email": "staff@example.com", "password": "secret-1",
	})
	testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusCreated)
}

func TestAdminLoginEndpoint(t *testing.T) {
	router := newAdminRouter(t)
	registerStaff(t, router)

	t.Run("unregistered email", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/user/login", map[string]string{
			"email": "yok@example.com", "password": "secret-1",
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/user/login", map[string]string{
			"email": "staff@example.com", "password": "wrong",
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("success sets httpOnly cookie accepted by the admin gate", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/user/login", map[string]string{
			"email": "staff@example.com", "password": "secret-1",
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var cookie *http.Cookie
		for _, c := range rr.Result().Cookies() {
			if c.Name == middleware.AdminCookieName {
				cookie = c
			}
		}
		require.NotNil(t, cookie, "expected %s cookie", middleware.AdminCookieName)
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)

		ping := testutil.NewRequest(t, http.MethodGet, "/admin/ping")
		ping.AddCookie(cookie)
		testutil.AssertStatus(t, testutil.DoRequest(router, ping), http.StatusOK)
	})
}

func TestAdminLogoutEndpoint(t *testing.T) {
	router := newAdminRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/user/logout"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.AdminCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAdminGateWithoutToken(t *testing.T) {
	router := newAdminRouter(t)
	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/admin/ping"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	testutil.AssertJSONContains(t, rr, "reason", "TOKEN_MISSING")
}
