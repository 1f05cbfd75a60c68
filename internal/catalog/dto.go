// AngelaMos | 2026
// dto.go

package catalog

import (
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name        string           `json:"name"        validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"required,max=2000"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0,lte=99999999"`
	Category    string           `json:"category"    validate:"required,min=1,max=100"`
	Image       string           `json:"image"       validate:"required,max=2048"`
	Stock       int              `json:"stock"       validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,gte=0,lte=99999999"`
	Category    *string          `json:"category"    validate:"omitempty,min=1,max=100"`
	Image       *string          `json:"image"       validate:"omitempty,max=2048"`
	Stock       *int             `json:"stock"       validate:"omitempty,gte=0"`
}

func (r UpdateProductRequest) toPatch() ProductPatch {
	patch := ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Image:       r.Image,
		Stock:       r.Stock,
	}
	if r.Price != nil {
		rounded := RoundPrice(*r.Price)
		patch.Price = &rounded
	}
	return patch
}

type CreateServiceRequest struct {
	Name        string           `json:"name"        validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"required,max=2000"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0,lte=99999999"`
	Duration    int              `json:"duration"    validate:"required,gt=0,lte=1440"`
	Image       string           `json:"image"       validate:"required,max=2048"`
}

type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"`
}

type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    int    `json:"duration"`
	Image       string `json:"image"`
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(pricePlaces),
		Category:    p.Category,
		Image:       p.Image,
		Stock:       p.Stock,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}

func ToServiceResponse(s *PetService) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.StringFixed(pricePlaces),
		Duration:    s.Duration,
		Image:       s.Image,
	}
}

func ToServiceResponseList(services []PetService) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, ToServiceResponse(&services[i]))
	}
	return out
}
