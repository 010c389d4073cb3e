package service

import (
	"context"
	"time"

	"loja-backend/internal/models"
	"loja-backend/internal/repository"

	"github.com/google/uuid"
)

type customerService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCustomerService(repo *repository.Repository) CustomerService {
	return &customerService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	now := s.now()
	customer := &models.Customer{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, limit, offset int) ([]models.Customer, int64, error) {
	listPtr, total, err := s.repo.Customers.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list := make([]models.Customer, len(listPtr))
	for i, c := range listPtr {
		list[i] = *c
	}
	return list, total, nil
}

// UpdateCustomer перезаписывает все поля карточки целиком (не merge):
// редактирование клиента — это полная форма.
func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, in CustomerInput) (*models.Customer, error) {
	customer, err := s.repo.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	customer.Name = in.Name
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.Address = in.Address
	customer.Notes = in.Notes
	customer.UpdatedAt = s.now()

	if err := s.repo.Customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer удаляет клиента вместе со всеми его заказами и позициями.
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Customers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
