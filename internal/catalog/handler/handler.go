// Package handler exposes the catalog over HTTP: public browsing routes
// for the storefront and admin-gated CRUD for the panel.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"velora/internal/audit"
	"velora/internal/catalog"
	"velora/internal/platform/middleware"
	dErrors "velora/pkg/domain-errors"
	"velora/pkg/platform/httputil"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateCategory(ctx context.Context, input catalog.CreateCategoryInput) (catalog.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, categorySlug string) ([]catalog.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error)
	CreateProduct(ctx context.Context, input catalog.ProductInput) (catalog.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.ProductInput) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	logger  *slog.Logger
	catalog Service
	audit   *audit.Publisher
}

func New(catalogSvc Service, auditPub *audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		catalog: catalogSvc,
		audit:   auditPub,
	}
}

// RegisterPublic mounts the storefront read routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/category", h.handleListCategories)
	r.Get("/product", h.handleListProducts)
	r.Get("/product/{slug}", h.handleGetProduct)
}

// RegisterAdmin mounts the write routes; the caller wraps them with the
// admin gate.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/category", h.handleCreateCategory)
	r.Delete("/category", h.handleDeleteCategory)
	r.Post("/product", h.handleCreateProduct)
	r.Put("/product", h.handleUpdateProduct)
	r.Delete("/product", h.handleDeleteProduct)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.logError(ctx, "failed to list categories", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, categories)
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input catalog.CreateCategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
		return
	}

	category, err := h.catalog.CreateCategory(ctx, input)
	if err != nil {
		h.logError(ctx, "failed to create category", err)
		httputil.WriteError(w, err)
		return
	}

	h.emit(ctx, audit.EventCategoryCreated, map[string]string{
		"categoryId": category.ID.String(),
		"slug":       category.Slug,
	})
	httputil.WriteData(w, http.StatusCreated, category)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Category id required"))
		return
	}

	if err := h.catalog.DeleteCategory(ctx, id); err != nil {
		h.logError(ctx, "failed to delete category", err)
		httputil.WriteError(w, err)
		return
	}

	h.emit(ctx, audit.EventCategoryDeleted, map[string]string{"categoryId": id.String()})
	httputil.WriteMessage(w, http.StatusOK, "Category deleted")
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	products, err := h.catalog.ListProducts(ctx, r.URL.Query().Get("slug"))
	if err != nil {
		h.logError(ctx, "failed to list products", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, products)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	product, err := h.catalog.GetProductBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.logError(ctx, "failed to fetch product", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, product)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
		return
	}

	product, err := h.catalog.CreateProduct(ctx, input)
	if err != nil {
		h.logError(ctx, "failed to create product", err)
		httputil.WriteError(w, err)
		return
	}

	h.emit(ctx, audit.EventProductCreated, map[string]string{
		"productId": product.ID.String(),
		"slug":      product.Slug,
	})
	httputil.WriteData(w, http.StatusCreated, product)
}

type updateProductRequest struct {
	ID uuid.UUID `json:"id"`
	catalog.ProductInput
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
		return
	}
	if req.ID == uuid.Nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Product id required"))
		return
	}

	product, err := h.catalog.UpdateProduct(ctx, req.ID, req.ProductInput)
	if err != nil {
		h.logError(ctx, "failed to update product", err)
		httputil.WriteError(w, err)
		return
	}

	h.emit(ctx, audit.EventProductUpdated, map[string]string{
		"productId": product.ID.String(),
		"slug":      product.Slug,
	})
	httputil.WriteData(w, http.StatusOK, product)
}

// deleteProductID pulls the product id from the query string, falling
// back to a JSON body. The body path tolerates an empty or absent
// payload so the admin panel can call it either way.
func deleteProductID(r *http.Request) (uuid.UUID, error) {
	if raw := r.URL.Query().Get("id"); raw != "" {
		return uuid.Parse(raw)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return uuid.Nil, err
	}
	if body.ID == "" {
		return uuid.Nil, errors.New("missing id")
	}
	return uuid.Parse(body.ID)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := deleteProductID(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Product id required"))
		return
	}

	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		h.logError(ctx, "failed to delete product", err)
		httputil.WriteError(w, err)
		return
	}

	h.emit(ctx, audit.EventProductDeleted, map[string]string{"productId": id.String()})
	httputil.WriteMessage(w, http.StatusOK, "Product deleted")
}

func (h *Handler) emit(ctx context.Context, eventType string, metadata map[string]string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(ctx, audit.Event{
		Type:     eventType,
		ActorID:  middleware.GetUserID(ctx),
		Metadata: metadata,
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
