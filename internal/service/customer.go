package service

import (
	"context"

	"loja-backend/internal/models"

	"github.com/google/uuid"
)

type CustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]models.Customer, int64, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, in CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}
