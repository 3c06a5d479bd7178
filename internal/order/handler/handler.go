// Package handler exposes checkout and order listings over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"velora/internal/audit"
	"velora/internal/order"
	"velora/internal/platform/middleware"
	dErrors "velora/pkg/domain-errors"
	"velora/pkg/platform/httputil"
)

// Service defines the order operations the handler needs.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input order.CreateOrderInput) (order.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error)
	ListAllWithUsers(ctx context.Context) ([]order.AdminOrder, error)
}

type Handler struct {
	logger *slog.Logger
	orders Service
	audit  *audit.Publisher
}

func New(orders Service, auditPub *audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		orders: orders,
		audit:  auditPub,
	}
}

// RegisterCustomer mounts the routes gated by customer auth.
func (h *Handler) RegisterCustomer(r chi.Router) {
	r.Get("/customer/orders", h.handleListOwnOrders)
	r.Post("/customer/orders", h.handleCreateOrder)
}

// RegisterAdmin mounts the admin order list; the caller wraps it with
// the admin gate.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/customer/orders", h.handleListAllOrders)
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.callerID(ctx, w)
	if !ok {
		return
	}

	var input order.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Geçersiz istek gövdesi"))
		return
	}

	created, err := h.orders.Create(ctx, userID, input)
	if err != nil {
		h.logError(ctx, "failed to create order", err)
		httputil.WriteError(w, err)
		return
	}

	if h.audit != nil {
		h.audit.Emit(ctx, audit.Event{
			Type:    audit.EventOrderCreated,
			ActorID: userID.String(),
			Metadata: map[string]string{
				"orderId": created.ID.String(),
				"total":   created.Total.String(),
			},
		})
	}
	httputil.WriteData(w, http.StatusCreated, created)
}

func (h *Handler) handleListOwnOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.callerID(ctx, w)
	if !ok {
		return
	}

	orders, err := h.orders.ListForUser(ctx, userID)
	if err != nil {
		h.logError(ctx, "failed to list orders", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, orders)
}

func (h *Handler) handleListAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orders.ListAllWithUsers(ctx)
	if err != nil {
		h.logError(ctx, "failed to list all orders", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, orders)
}

func (h *Handler) callerID(ctx context.Context, w http.ResponseWriter) (uuid.UUID, bool) {
	raw := middleware.GetUserID(ctx)
	userID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.ErrorContext(ctx, "user id missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return uuid.Nil, false
	}
	return userID, true
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
