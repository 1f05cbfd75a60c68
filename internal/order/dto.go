// AngelaMos | 2026
// dto.go

package order

import (
	"time"
)

type CreateOrderRequest struct {
	CustomerName string        `json:"customerName" validate:"required,min=1,max=200"`
	Items        []LineRequest `json:"items"        validate:"required,min=1,max=100,dive"`
}

type LineRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"  validate:"required,min=1,max=1000"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

type OrderResponse struct {
	ID           int64          `json:"id"`
	UserID       *int64         `json:"userId"`
	CustomerName string         `json:"customerName"`
	Total        string         `json:"total"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	Items        []ItemResponse `json:"items,omitempty"`
}

func ToOrderResponse(o *Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		CustomerName: o.CustomerName,
		Total:        o.Total.StringFixed(2),
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}

	if o.Items != nil {
		resp.Items = make([]ItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			resp.Items = append(resp.Items, ItemResponse{
				ID:          it.ID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				Price:       it.Price.StringFixed(2),
			})
		}
	}

	return resp
}

func ToOrderResponseList(orders []Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out
}
