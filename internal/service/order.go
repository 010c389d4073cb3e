package service

import (
	"context"

	"loja-backend/internal/models"

	"github.com/google/uuid"
)

// CreateOrderItem — позиция в запросе на создание заказа.
// Цена и количество могут отсутствовать: такая позиция даёт нулевой
// вклад в сумму, ошибки нет.
type CreateOrderItem struct {
	ProductName    string
	UnitPriceCents *int64
	Quantity       *uint32
	SizeLabel      *string
}

type CreateOrderInput struct {
	CustomerID        uuid.UUID
	Items             []CreateOrderItem
	InstallmentsTotal int32
}

// UpdateOrderItem — элемент патча заказа. С заполненным ID обновляет
// существующую позицию (merge), без ID — добавляет новую.
type UpdateOrderItem struct {
	ID             *uuid.UUID
	ProductName    *string
	UnitPriceCents *int64
	Quantity       *uint32
	SizeLabel      *string
}

type UpdateOrderInput struct {
	Items                 []UpdateOrderItem
	InstallmentsTotal     *int32
	InstallmentsRemaining *int32
}

type ListFilter struct {
	CustomerID *uuid.UUID
	Status     *models.PaymentStatus
	Limit      int
	Offset     int
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*models.Order, error)
	PayInstallment(ctx context.Context, id uuid.UUID) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
