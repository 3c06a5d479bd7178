// Package handler exposes customer registration, login, and the
// authenticated profile over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"velora/internal/audit"
	"velora/internal/customer"
	"velora/internal/platform/device"
	"velora/internal/platform/middleware"
	dErrors "velora/pkg/domain-errors"
	"velora/pkg/platform/httputil"
)

// Service defines the customer operations the handler needs.
type Service interface {
	Register(ctx context.Context, input customer.RegisterInput) (customer.Profile, error)
	Login(ctx context.Context, input customer.LoginInput) (customer.Profile, string, error)
	Profile(ctx context.Context, id uuid.UUID) (customer.Profile, error)
}

type Handler struct {
	logger       *slog.Logger
	customers    Service
	audit        *audit.Publisher
	tokenTTL     time.Duration
	cookieSecure bool
}

func New(customers Service, auditPub *audit.Publisher, tokenTTL time.Duration, cookieSecure bool, logger *slog.Logger) *Handler {
	return &Handler{
		logger:       logger,
		customers:    customers,
		audit:        auditPub,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
	}
}

// RegisterPublic mounts registration and login.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/customer", h.handleRegister)
	r.Post("/customer/login", h.handleLogin)
}

// RegisterAuthenticated mounts the profile route; the caller wraps it
// with customer auth (bearer or storefront cookie).
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Get("/customer/me", h.handleMe)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input customer.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Geçersiz istek gövdesi"))
		return
	}

	profile, err := h.customers.Register(ctx, input)
	if err != nil {
		h.logError(ctx, "failed to register customer", err)
		httputil.WriteError(w, err)
		return
	}

	h.emit(ctx, audit.EventUserRegistered, profile.ID.String(), r.UserAgent())
	httputil.WriteData(w, http.StatusCreated, profile)
}

type loginResponse struct {
	User  customer.Profile `json:"user"`
	Token string           `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input customer.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Geçersiz istek gövdesi"))
		return
	}

	profile, bearer, err := h.customers.Login(ctx, input)
	if err != nil {
		h.logError(ctx, "customer login failed", err)
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CustomerCookieName,
		Value:    bearer,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.emit(ctx, audit.EventUserLogin, profile.ID.String(), r.UserAgent())
	httputil.WriteData(w, http.StatusOK, loginResponse{User: profile, Token: bearer})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := uuid.Parse(middleware.GetUserID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "user id missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	profile, err := h.customers.Profile(ctx, userID)
	if err != nil {
		h.logError(ctx, "failed to fetch profile", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, profile)
}

func (h *Handler) emit(ctx context.Context, eventType, actorID, userAgent string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(ctx, audit.Event{
		Type:    eventType,
		ActorID: actorID,
		Metadata: map[string]string{
			"device": device.ParseUserAgent(userAgent),
		},
	})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	}
	if dErrors.Is(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.WarnContext(ctx, msg, attrs...)
}
