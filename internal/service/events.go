package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	ItemID      uuid.UUID `json:"item_id"`
	ProductName string    `json:"product_name"`
	Quantity    uint32    `json:"quantity"`
	PriceCents  int64     `json:"price_cents"`
	LineTotal   int64     `json:"line_total_cents"`
}

type OrderCreatedEvent struct {
	OrderID               uuid.UUID        `json:"order_id"`
	CustomerID            uuid.UUID        `json:"customer_id"`
	Items                 []OrderItemEvent `json:"items"`
	TotalCents            int64            `json:"total_cents"`
	InstallmentsTotal     int32            `json:"installments_total"`
	InstallmentCents      int64            `json:"installment_cents"`
	Currency              string           `json:"currency"`
	CreatedAt             time.Time        `json:"created_at"`
}

type OrderPaidEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	TotalCents int64     `json:"total_cents"`
	PaidAt     time.Time `json:"paid_at"`
}

type OrderDeletedEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	DeletedAt  time.Time `json:"deleted_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderPaid(ctx context.Context, e OrderPaidEvent) error
	PublishOrderDeleted(ctx context.Context, e OrderDeletedEvent) error
}
