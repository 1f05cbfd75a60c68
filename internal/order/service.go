// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/petshop-backend/internal/catalog"
	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
)

// ProductLookup reads the current catalog entry for a product id.
type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
	metrics  *core.Metrics
}

func NewService(
	repo Repository,
	products ProductLookup,
	metrics *core.Metrics,
) *Service {
	return &Service{repo: repo, products: products, metrics: metrics}
}

// Assemble prices the cart against the current catalog and stores the
// order. Lines whose product no longer exists are dropped without telling
// the client; they are counted and traced instead. Stock is not touched.
func (s *Service) Assemble(
	ctx context.Context,
	identity *middleware.Identity,
	req CreateOrderRequest,
) (*Order, error) {
	ctx, span := core.StartSpan(ctx, "order.assemble",
		attribute.Int("order.lines", len(req.Items)),
	)
	defer span.End()

	order := &Order{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Status:       StatusPending,
		Total:        decimal.Zero,
		Items:        make([]Item, 0, len(req.Items)),
	}
	if identity != nil {
		userID := identity.UserID
		order.UserID = &userID
	}

	skipped := 0
	for _, line := range req.Items {
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if errors.Is(err, core.ErrNotFound) {
			skipped++
			core.AddSpanEvent(ctx, "order.line_skipped",
				attribute.Int64("product.id", line.ProductID),
				attribute.Int("quantity", line.Quantity),
			)
			slog.DebugContext(ctx, "order line skipped, product missing",
				"product_id", line.ProductID,
			)
			continue
		}
		if err != nil {
			core.SetSpanError(ctx, err)
			return nil, fmt.Errorf("price order line: %w", err)
		}

		item := Item{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		}
		order.Items = append(order.Items, item)
		order.Total = order.Total.Add(item.Subtotal())
	}

	if skipped > 0 {
		s.metrics.AddOrderLinesSkipped(skipped)
	}
	span.SetAttributes(attribute.Int("order.lines_skipped", skipped))

	if err := s.repo.Create(ctx, order); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	s.metrics.IncOrdersCreated()
	span.SetAttributes(attribute.Int64("order.id", order.ID))

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total.StringFixed(2),
	)

	return order, nil
}

// List returns every order for admins and only the caller's own orders for
// everyone else.
func (s *Service) List(
	ctx context.Context,
	identity *middleware.Identity,
) ([]Order, error) {
	if identity == nil {
		return nil, core.ErrUnauthorized
	}
	if identity.IsAdmin() {
		return s.repo.List(ctx, nil)
	}

	userID := identity.UserID
	return s.repo.List(ctx, &userID)
}

// Get returns an order with its items. Orders owned by someone else are
// reported as not found.
func (s *Service) Get(
	ctx context.Context,
	identity *middleware.Identity,
	id int64,
) (*Order, error) {
	if identity == nil {
		return nil, core.ErrUnauthorized
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if identity.IsAdmin() {
		return order, nil
	}
	if order.UserID == nil || *order.UserID != identity.UserID {
		return nil, fmt.Errorf("order %d: %w", id, core.ErrNotFound)
	}

	return order, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Revenue(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.Revenue(ctx)
}
