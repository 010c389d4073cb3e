package repository

import "gorm.io/gorm"

type Repository struct {
	DB         *gorm.DB
	Customers  CustomerRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
	Users      UserRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Customers:  NewCustomerRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
		Users:      NewUserRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }
