// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

// ProductRepository trusts its caller: role checks happen in the router
// before any method here runs.
type ProductRepository interface {
	List(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, id int64, patch ProductPatch) (*Product, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type productRepository struct {
	db core.DBTX
}

func NewProductRepository(db core.DBTX) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `
	id, name, description, price, category, image, stock,
	created_at, updated_at`

func (r *productRepository) List(
	ctx context.Context,
	category string,
) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any

	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetByID(
	ctx context.Context,
	id int64,
) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product Product
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (name, description, price, category, image, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Image,
		product.Stock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *productRepository) Update(
	ctx context.Context,
	id int64,
	patch ProductPatch,
) (*Product, error) {
	query := `
		UPDATE products SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			price       = COALESCE($4, price),
			category    = COALESCE($5, category),
			image       = COALESCE($6, image),
			stock       = COALESCE($7, stock),
			updated_at  = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	var product Product
	err := r.db.GetContext(ctx, &product, query,
		id,
		patch.Name,
		patch.Description,
		patch.Price,
		patch.Category,
		patch.Image,
		patch.Stock,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update product %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}

	return &product, nil
}

// Delete is idempotent: removing a missing product is not an error.
// Order history keeps its own name and price snapshot.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(
		ctx,
		`DELETE FROM products WHERE id = $1`,
		id,
	); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

type ServiceRepository interface {
	List(ctx context.Context) ([]PetService, error)
	GetByID(ctx context.Context, id int64) (*PetService, error)
	Create(ctx context.Context, service *PetService) error
	Count(ctx context.Context) (int, error)
}

type serviceRepository struct {
	db core.DBTX
}

func NewServiceRepository(db core.DBTX) ServiceRepository {
	return &serviceRepository{db: db}
}

const serviceColumns = `id, name, description, price, duration, image`

func (r *serviceRepository) List(ctx context.Context) ([]PetService, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY id`

	services := []PetService{}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	return services, nil
}

func (r *serviceRepository) GetByID(
	ctx context.Context,
	id int64,
) (*PetService, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	var service PetService
	err := r.db.GetContext(ctx, &service, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get service %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}

	return &service, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *PetService) error {
	query := `
		INSERT INTO services (name, description, price, duration, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.GetContext(ctx, &service.ID, query,
		service.Name,
		service.Description,
		service.Price,
		service.Duration,
		service.Image,
	)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	return nil
}

func (r *serviceRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM services`); err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}
