package models

import (
	"time"

	"github.com/google/uuid"
)

// Статус оплаты заказа — строковый тип, как статусы в остальных сервисах
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PAYMENT_STATUS_PENDING"
	PaymentStatusPaid    PaymentStatus = "PAYMENT_STATUS_PAID"
)

type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name    string    `gorm:"type:text;not null" json:"name"`
	Phone   string    `gorm:"type:text;not null" json:"phone"`
	Email   string    `gorm:"type:text;not null" json:"email"`
	Address string    `gorm:"type:text;not null" json:"address"`
	Notes   string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	Orders []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"` // каскад на заказы
}

func (Customer) TableName() string { return "customers" }

type Order struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	Status     PaymentStatus `gorm:"type:text;not null;default:'PAYMENT_STATUS_PENDING';index" json:"status"`

	TotalCents            int64  `gorm:"not null;default:0" json:"total_cents"`
	InstallmentsTotal     int32  `gorm:"not null;default:1" json:"installments_total"`
	InstallmentsRemaining int32  `gorm:"not null;default:0" json:"installments_remaining"`
	InstallmentCents      int64  `gorm:"not null;default:0" json:"installment_cents"`
	CurrencyCode          string `gorm:"type:char(3);not null" json:"currency_code"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"` // каскад на позиции
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductName    string    `gorm:"type:text;not null" json:"product_name"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	Quantity       uint32    `gorm:"type:int;not null" json:"quantity"` // CHECK добавим в миграции
	SizeLabel      *string   `gorm:"type:text" json:"size_label,omitempty"`
	LineTotalCents int64     `gorm:"not null" json:"line_total_cents"`
	CurrencyCode   string    `gorm:"type:char(3);not null" json:"currency_code"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username string    `gorm:"type:text;not null"` // уникальность — функциональный индекс lower(username)
	Password string    `gorm:"not null"`           // bcrypt hash

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }
