package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"velora/internal/platform/metrics"
	dErrors "velora/pkg/domain-errors"
)

// Service owns checkout rules. Line items are validated in submission
// order and the whole request fails on the first invalid one, so a
// rejected line never contributes to a persisted total.
type Service struct {
	orders  Store
	users   UserDirectory
	metrics *metrics.Metrics
}

func NewService(orders Store, opts ...Option) *Service {
	s := &Service{orders: orders}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

func WithUserDirectory(users UserDirectory) Option {
	return func(s *Service) { s.users = users }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// Create validates the submitted cart and persists the order with its
// items in one write. The total is computed from the submitted unit
// prices, not re-priced against the catalog; see the handler for where
// that trust boundary is flagged.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (Order, error) {
	if len(input.Items) == 0 {
		return Order{}, dErrors.New(dErrors.CodeBadRequest, "Sepet boş. Sipariş oluşturulamadı.")
	}

	orderID := uuid.New()
	items := make([]OrderItem, 0, len(input.Items))
	total := decimal.Zero
	for _, in := range input.Items {
		if in.name() == "" {
			return Order{}, dErrors.New(dErrors.CodeBadRequest, "Ürün adı eksik.")
		}
		price := in.unitPrice()
		if price == nil || !price.IsPositive() {
			return Order{}, dErrors.New(dErrors.CodeBadRequest, "Ürün fiyatı hatalı.")
		}
		quantity := in.quantity()
		if quantity <= 0 {
			return Order{}, dErrors.New(dErrors.CodeBadRequest, "Ürün adedi hatalı.")
		}

		items = append(items, OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   in.productID(),
			ProductName: in.name(),
			ProductSlug: in.slug(),
			Image:       in.Image,
			Size:        in.Size,
			UnitPrice:   *price,
			Quantity:    quantity,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	order := Order{
		ID:        orderID,
		UserID:    userID,
		Status:    StatusPending,
		Total:     total,
		Currency:  currency,
		CreatedAt: time.Now(),
		Items:     items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return Order{}, dErrors.Wrap(err, dErrors.CodeInternal, "Sipariş oluşturulamadı.")
	}

	s.metrics.IncrementOrdersCreated()
	return order, nil
}

// ListForUser returns the caller's own orders, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Siparişler alınamadı.")
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// ListAllWithUsers returns every order for the admin panel, each
// enriched with its customer summary when the directory can resolve it.
func (s *Service) ListAllWithUsers(ctx context.Context) ([]AdminOrder, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Siparişler alınamadı.")
	}

	var summaries map[uuid.UUID]UserSummary
	if s.users != nil && len(orders) > 0 {
		ids := make([]uuid.UUID, 0, len(orders))
		seen := make(map[uuid.UUID]struct{}, len(orders))
		for _, o := range orders {
			if _, ok := seen[o.UserID]; ok {
				continue
			}
			seen[o.UserID] = struct{}{}
			ids = append(ids, o.UserID)
		}
		summaries, err = s.users.Summaries(ctx, ids)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Siparişler alınamadı.")
		}
	}

	out := make([]AdminOrder, len(orders))
	for i, o := range orders {
		out[i] = AdminOrder{Order: o}
		if summary, ok := summaries[o.UserID]; ok {
			s := summary
			out[i].User = &s
		}
	}
	return out, nil
}
