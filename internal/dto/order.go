package dto

import (
	"loja-backend/internal/models"

	"github.com/google/uuid"
)

// OrderItemRequest используется и при создании, и при патче заказа.
// При патче заполненный id означает merge-обновление существующей позиции,
// отсутствие id — добавление новой.
type OrderItemRequest struct {
	ID             *uuid.UUID `json:"id"`
	ProductName    *string    `json:"product_name"`
	UnitPriceCents *int64     `json:"unit_price_cents"`
	Quantity       *uint32    `json:"quantity"`
	SizeLabel      *string    `json:"size_label"`
}

type CreateOrderRequest struct {
	CustomerID        uuid.UUID          `json:"customer_id" binding:"required"`
	Items             []OrderItemRequest `json:"items"`
	InstallmentsTotal int32              `json:"installments_total" binding:"required,min=1"`
}

type UpdateOrderRequest struct {
	Items                 []OrderItemRequest `json:"items"`
	InstallmentsTotal     *int32             `json:"installments_total"`
	InstallmentsRemaining *int32             `json:"installments_remaining"`
}

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
}
