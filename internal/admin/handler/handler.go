// Package handler exposes admin panel login and staff registration.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"velora/internal/admin"
	"velora/internal/audit"
	"velora/internal/platform/device"
	"velora/internal/platform/middleware"
	dErrors "velora/pkg/domain-errors"
	"velora/pkg/platform/httputil"
)

// Service defines the admin identity operations the handler needs.
type Service interface {
	Register(ctx context.Context, input admin.RegisterInput) (admin.Profile, error)
	Login(ctx context.Context, input admin.LoginInput) (admin.Profile, string, error)
}

type Handler struct {
	logger       *slog.Logger
	admins       Service
	audit        *audit.Publisher
	tokenTTL     time.Duration
	cookieSecure bool
}

func New(admins Service, auditPub *audit.Publisher, tokenTTL time.Duration, cookieSecure bool, logger *slog.Logger) *Handler {
	return &Handler{
		logger:       logger,
		admins:       admins,
		audit:        auditPub,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
	}
}

// RegisterPublic mounts the panel's cookie-based auth routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/user/register", h.handleRegister)
	r.Post("/user/login", h.handleLogin)
	r.Post("/user/logout", h.handleLogout)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input admin.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
		return
	}

	profile, err := h.admins.Register(ctx, input)
	if err != nil {
		h.logError(ctx, "failed to register admin", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, profile)
}

type loginResponse struct {
	User  admin.Profile `json:"user"`
	Token string        `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input admin.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
		return
	}

	profile, bearer, err := h.admins.Login(ctx, input)
	if err != nil {
		h.logError(ctx, "admin login failed", err)
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    bearer,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	if h.audit != nil {
		h.audit.Emit(ctx, audit.Event{
			Type:    audit.EventAdminLogin,
			ActorID: profile.ID.String(),
			Metadata: map[string]string{
				"device": device.ParseUserAgent(r.UserAgent()),
			},
		})
	}
	httputil.WriteData(w, http.StatusOK, loginResponse{User: profile, Token: bearer})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteMessage(w, http.StatusOK, "Logged out")
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
