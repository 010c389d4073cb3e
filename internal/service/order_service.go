package service

import (
	"context"
	"time"

	"loja-backend/internal/models"
	"loja-backend/internal/repository"

	"github.com/google/uuid"
)

const currencyBRL = "BRL"

type orderService struct {
	repo   *repository.Repository
	events EventBus
	now    func() time.Time
}

func NewOrderService(repo *repository.Repository, events EventBus) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

func itemFromCreate(in CreateOrderItem) (models.OrderItem, error) {
	if in.UnitPriceCents != nil && *in.UnitPriceCents < 0 {
		return models.OrderItem{}, ErrPriceNegative
	}

	// отсутствующие цена/количество трактуются как ноль
	item := models.OrderItem{
		ProductName: in.ProductName,
		SizeLabel:   in.SizeLabel,
	}
	if in.UnitPriceCents != nil {
		item.UnitPriceCents = *in.UnitPriceCents
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	return item, nil
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.InstallmentsTotal < 1 {
		return nil, ErrInstallmentsInvalid
	}

	customer, err := s.repo.Customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	now := s.now()
	order := &models.Order{
		CustomerID:            customer.ID,
		InstallmentsTotal:     in.InstallmentsTotal,
		InstallmentsRemaining: in.InstallmentsTotal,
		CurrencyCode:          currencyBRL,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	for _, it := range in.Items {
		item, err := itemFromCreate(it)
		if err != nil {
			return nil, err
		}
		item.CreatedAt = now
		order.AddItem(item)
	}

	if err := order.Recalculate(); err != nil {
		return nil, err
	}
	order.RefreshStatus()

	err = s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, _ repository.OrderItemRepo) error {
		if err := or.Create(ctx, order); err != nil {
			return err
		}
		saved, err := or.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		order = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		evItems := make([]OrderItemEvent, 0, len(order.Items))
		for _, it := range order.Items {
			evItems = append(evItems, OrderItemEvent{
				ItemID:      it.ID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				PriceCents:  it.UnitPriceCents,
				LineTotal:   it.LineTotalCents,
			})
		}
		_ = s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:           order.ID,
			CustomerID:        order.CustomerID,
			Items:             evItems,
			TotalCents:        order.TotalCents,
			InstallmentsTotal: order.InstallmentsTotal,
			InstallmentCents:  order.InstallmentCents,
			Currency:          order.CurrencyCode,
			CreatedAt:         order.CreatedAt,
		})
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		CustomerID: f.CustomerID,
		Status:     f.Status,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

// UpdateOrder применяет частичный патч: сперва позиции (merge по id,
// добавление без id), затем число платежей, затем остаток. Любая ошибка
// валидации выходит до сохранения — заказ в БД остаётся нетронутым.
func (s *orderService) UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*models.Order, error) {
	order, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	prevStatus := order.Status
	now := s.now()

	if in.Items != nil {
		for _, it := range in.Items {
			if it.UnitPriceCents != nil && *it.UnitPriceCents < 0 {
				return nil, ErrPriceNegative
			}
			if it.ID != nil {
				// патч существующей позиции; неизвестный id молча пропускаем
				order.UpdateItem(*it.ID, models.ItemPatch{
					ProductName:    it.ProductName,
					UnitPriceCents: it.UnitPriceCents,
					Quantity:       it.Quantity,
					SizeLabel:      it.SizeLabel,
				})
				continue
			}

			item, err := itemFromCreate(CreateOrderItem{
				ProductName:    derefString(it.ProductName),
				UnitPriceCents: it.UnitPriceCents,
				Quantity:       it.Quantity,
				SizeLabel:      it.SizeLabel,
			})
			if err != nil {
				return nil, err
			}
			item.CreatedAt = now
			order.AddItem(item)
		}

		if err := order.Recalculate(); err != nil {
			return nil, err
		}
	}

	if in.InstallmentsTotal != nil {
		if err := order.ApplyInstallmentsTotal(*in.InstallmentsTotal); err != nil {
			return nil, err
		}
	}

	if in.InstallmentsRemaining != nil {
		if err := order.ApplyInstallmentsRemaining(*in.InstallmentsRemaining); err != nil {
			return nil, err
		}
	}

	// статус всегда выводится заново перед сохранением
	order.RefreshStatus()
	order.UpdatedAt = now

	err = s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, _ repository.OrderItemRepo) error {
		if err := or.Save(ctx, order); err != nil {
			return err
		}
		saved, err := or.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		order = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil && prevStatus != models.PaymentStatusPaid && order.Status == models.PaymentStatusPaid {
		_ = s.events.PublishOrderPaid(ctx, OrderPaidEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			TotalCents: order.TotalCents,
			PaidAt:     now,
		})
	}

	return order, nil
}

func (s *orderService) PayInstallment(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := order.PayInstallment(); err != nil {
		return nil, err
	}
	order.UpdatedAt = s.now()

	err = s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, _ repository.OrderItemRepo) error {
		return or.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil && order.Status == models.PaymentStatusPaid {
		_ = s.events.PublishOrderPaid(ctx, OrderPaidEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			TotalCents: order.TotalCents,
			PaidAt:     s.now(),
		})
	}

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	err = s.repo.Orders.WithTx(ctx, func(or repository.OrderRepo, ir repository.OrderItemRepo) error {
		// позиции уходят каскадом по FK, явное удаление — на случай
		// схемы без внешних ключей (миграция с отключёнными FK)
		if _, err := ir.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		_, err := or.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	if s.events != nil {
		_ = s.events.PublishOrderDeleted(ctx, OrderDeletedEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			DeletedAt:  s.now(),
		})
	}

	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
