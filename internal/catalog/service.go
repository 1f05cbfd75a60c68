// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"log/slog"
	"strings"
)

type Service struct {
	products ProductRepository
	services ServiceRepository
}

func NewService(products ProductRepository, services ServiceRepository) *Service {
	return &Service{products: products, services: services}
}

func (s *Service) ListProducts(
	ctx context.Context,
	category string,
) ([]Product, error) {
	return s.products.List(ctx, strings.TrimSpace(category))
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) CreateProduct(
	ctx context.Context,
	req CreateProductRequest,
) (*Product, error) {
	product := &Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       RoundPrice(*req.Price),
		Category:    strings.TrimSpace(req.Category),
		Image:       req.Image,
		Stock:       req.Stock,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "product created",
		"product_id", product.ID,
		"price", product.Price.StringFixed(pricePlaces),
	)

	return product, nil
}

func (s *Service) UpdateProduct(
	ctx context.Context,
	id int64,
	req UpdateProductRequest,
) (*Product, error) {
	patch := req.toPatch()
	if patch.IsEmpty() {
		return s.products.GetByID(ctx, id)
	}

	return s.products.Update(ctx, id, patch)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) CountProducts(ctx context.Context) (int, error) {
	return s.products.Count(ctx)
}

func (s *Service) ListServices(ctx context.Context) ([]PetService, error) {
	return s.services.List(ctx)
}

func (s *Service) CountServices(ctx context.Context) (int, error) {
	return s.services.Count(ctx)
}

func (s *Service) GetService(ctx context.Context, id int64) (*PetService, error) {
	return s.services.GetByID(ctx, id)
}

func (s *Service) CreateService(
	ctx context.Context,
	req CreateServiceRequest,
) (*PetService, error) {
	service := &PetService{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       RoundPrice(*req.Price),
		Duration:    req.Duration,
		Image:       req.Image,
	}

	if err := s.services.Create(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}
