// AngelaMos | 2026
// seed.go

package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/petshop-backend/internal/catalog"
	"github.com/carterperez-dev/petshop-backend/internal/config"
	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/user"
)

type UserStore interface {
	Count(ctx context.Context) (int, error)
	CreateAdmin(ctx context.Context, email, password, name string) (*user.User, error)
}

type CatalogStore interface {
	CountProducts(ctx context.Context) (int, error)
	CountServices(ctx context.Context) (int, error)
	CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (*catalog.Product, error)
	CreateService(ctx context.Context, req catalog.CreateServiceRequest) (*catalog.PetService, error)
}

// Result reports what a run created. GeneratedPassword is set only when the
// admin was created without a configured password; callers show it once.
type Result struct {
	Skipped           bool
	AdminID           int64
	GeneratedPassword string
	Products          int
	Services          int
}

type Seeder struct {
	users   UserStore
	catalog CatalogStore
}

func New(users UserStore, store CatalogStore) *Seeder {
	return &Seeder{users: users, catalog: store}
}

// Run bootstraps an empty database with the starter catalog and the
// configured admin account. Each table is only filled while it is empty and
// the admin goes in last, so a run that failed part way is resumed by the
// next one instead of being skipped for good.
func (s *Seeder) Run(ctx context.Context, cfg config.SeedConfig) (*Result, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		slog.DebugContext(ctx, "seed skipped, users present", "users", n)
		return &Result{Skipped: true}, nil
	}

	res := &Result{}

	if res.Products, err = s.seedProducts(ctx); err != nil {
		return nil, err
	}
	if res.Services, err = s.seedServices(ctx); err != nil {
		return nil, err
	}

	password := cfg.AdminPassword
	if password == "" {
		password, err = core.GenerateSecureToken(12)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		res.GeneratedPassword = password
	}

	admin, err := s.users.CreateAdmin(ctx, cfg.AdminEmail, password, cfg.AdminName)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	res.AdminID = admin.ID

	slog.InfoContext(ctx, "database seeded",
		"admin_email", admin.Email,
		"generated_password", res.GeneratedPassword != "",
		"products", res.Products,
		"services", res.Services,
	)

	return res, nil
}

func (s *Seeder) seedProducts(ctx context.Context) (int, error) {
	existing, err := s.catalog.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	created := 0
	for _, p := range starterProducts() {
		if _, err := s.catalog.CreateProduct(ctx, p); err != nil {
			return created, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		created++
	}
	return created, nil
}

func (s *Seeder) seedServices(ctx context.Context) (int, error) {
	existing, err := s.catalog.CountServices(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed services: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	created := 0
	for _, svc := range starterServices() {
		if _, err := s.catalog.CreateService(ctx, svc); err != nil {
			return created, fmt.Errorf("seed service %q: %w", svc.Name, err)
		}
		created++
	}
	return created, nil
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func starterProducts() []catalog.CreateProductRequest {
	return []catalog.CreateProductRequest{
		{
			Name:        "Ração Premium Cães",
			Description: "Ração de alta qualidade para cães adultos",
			Price:       price("129.90"),
			Category:    "Ração",
			Image:       "https://images.unsplash.com/photo-1568640347023-a616a30bc3bd?w=500&q=80",
			Stock:       50,
		},
		{
			Name:        "Brinquedo Mordedor",
			Description: "Brinquedo resistente para cães",
			Price:       price("29.90"),
			Category:    "Brinquedos",
			Image:       "https://images.unsplash.com/photo-1576201836106-db1758fd1c97?w=500&q=80",
			Stock:       100,
		},
		{
			Name:        "Shampoo Pet",
			Description: "Shampoo neutro para cães e gatos",
			Price:       price("35.50"),
			Category:    "Higiene",
			Image:       "https://images.unsplash.com/photo-1583947215259-38e31be8751f?w=500&q=80",
			Stock:       30,
		},
		{
			Name:        "Coleira Ajustável",
			Description: "Coleira confortável e segura",
			Price:       price("45.00"),
			Category:    "Acessórios",
			Image:       "https://images.unsplash.com/photo-1605639147291-8079055d8ce7?w=500&q=80",
			Stock:       200,
		},
	}
}

func starterServices() []catalog.CreateServiceRequest {
	return []catalog.CreateServiceRequest{
		{
			Name:        "Banho Completo",
			Description: "Banho com produtos premium e secagem",
			Price:       price("50.00"),
			Duration:    60,
			Image:       "https://images.unsplash.com/photo-1516734212186-a967f81ad0d7?w=500&q=80",
		},
		{
			Name:        "Tosa Higiênica",
			Description: "Corte de pelos e limpeza",
			Price:       price("70.00"),
			Duration:    90,
			Image:       "https://images.unsplash.com/photo-1623387641168-d9803ddd3f35?w=500&q=80",
		},
		{
			Name:        "Consulta Veterinária",
			Description: "Avaliação completa da saúde do seu pet",
			Price:       price("150.00"),
			Duration:    30,
			Image:       "https://images.unsplash.com/photo-1628009368231-760335546e9c?w=500&q=80",
		},
	}
}
