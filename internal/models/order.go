package models

import (
	"errors"

	"github.com/google/uuid"
)

// Ошибки инвариантов агрегата заказа. Сервис отдаёт их наверх как есть,
// транспорт мапит на коды ответа.
var (
	ErrZeroInstallments        = errors.New("installments total must be greater than zero")
	ErrInstallmentsReduced     = errors.New("installments cannot be reduced")
	ErrRemainingNegative       = errors.New("remaining installments cannot be negative")
	ErrRemainingExceedsTotal   = errors.New("remaining installments cannot exceed total")
	ErrNoRemainingInstallments = errors.New("no remaining installments to decrement")
)

// ItemPatch — частичное обновление позиции: непустые поля перезаписывают
// текущие, nil-поля не трогаются.
type ItemPatch struct {
	ProductName    *string
	UnitPriceCents *int64
	Quantity       *uint32
	SizeLabel      *string
}

// ComputeLineTotalCents — вклад позиции в сумму заказа.
func (i *OrderItem) ComputeLineTotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// ComputeTotalCents суммирует позиции. Позиция без цены или количества
// (нулевые значения) даёт нулевой вклад.
func ComputeTotalCents(items []OrderItem) int64 {
	var total int64
	for i := range items {
		total += items[i].ComputeLineTotalCents()
	}
	return total
}

// ComputeInstallmentCents — размер одного платежа: total / n, целочисленно.
func ComputeInstallmentCents(totalCents int64, installmentsTotal int32) (int64, error) {
	if installmentsTotal == 0 {
		return 0, ErrZeroInstallments
	}
	return totalCents / int64(installmentsTotal), nil
}

// AddItem добавляет позицию и проставляет обратную ссылку на заказ.
// Пересчёт суммы — отдельным шагом (Recalculate), сам набор не пересчитывает.
func (o *Order) AddItem(item OrderItem) {
	item.OrderID = o.ID
	item.CurrencyCode = o.CurrencyCode
	item.LineTotalCents = item.ComputeLineTotalCents()
	o.Items = append(o.Items, item)
}

// UpdateItem применяет патч к позиции по id (merge, не replace).
// Неизвестный id молча игнорируется, возвращается false.
func (o *Order) UpdateItem(id uuid.UUID, patch ItemPatch) bool {
	for idx := range o.Items {
		it := &o.Items[idx]
		if it.ID != id {
			continue
		}
		if patch.ProductName != nil {
			it.ProductName = *patch.ProductName
		}
		if patch.UnitPriceCents != nil {
			it.UnitPriceCents = *patch.UnitPriceCents
		}
		if patch.Quantity != nil {
			it.Quantity = *patch.Quantity
		}
		if patch.SizeLabel != nil {
			it.SizeLabel = patch.SizeLabel
		}
		it.LineTotalCents = it.ComputeLineTotalCents()
		return true
	}
	return false
}

// RemoveItem убирает позицию из набора и снимает обратную ссылку.
func (o *Order) RemoveItem(id uuid.UUID) bool {
	for idx := range o.Items {
		if o.Items[idx].ID != id {
			continue
		}
		o.Items[idx].OrderID = uuid.Nil
		o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
		return true
	}
	return false
}

// Recalculate пересчитывает сумму заказа и размер платежа с нуля по позициям.
// Вызывается после любого изменения набора позиций или числа платежей,
// инкрементальных правок суммы нет — только полный пересчёт.
func (o *Order) Recalculate() error {
	for i := range o.Items {
		o.Items[i].LineTotalCents = o.Items[i].ComputeLineTotalCents()
	}
	o.TotalCents = ComputeTotalCents(o.Items)

	installment, err := ComputeInstallmentCents(o.TotalCents, o.InstallmentsTotal)
	if err != nil {
		return err
	}
	o.InstallmentCents = installment
	return nil
}

// ApplyInstallmentsTotal увеличивает общее число платежей.
// Уменьшать нельзя: часть платежей могла быть уже внесена.
func (o *Order) ApplyInstallmentsTotal(n int32) error {
	if n < o.InstallmentsTotal {
		return ErrInstallmentsReduced
	}
	o.InstallmentsTotal = n

	installment, err := ComputeInstallmentCents(o.TotalCents, o.InstallmentsTotal)
	if err != nil {
		return err
	}
	o.InstallmentCents = installment
	return nil
}

// ApplyInstallmentsRemaining выставляет число оставшихся платежей в границах
// [0, InstallmentsTotal].
func (o *Order) ApplyInstallmentsRemaining(n int32) error {
	if n < 0 {
		return ErrRemainingNegative
	}
	if n > o.InstallmentsTotal {
		return ErrRemainingExceedsTotal
	}
	o.InstallmentsRemaining = n
	return nil
}

// PayInstallment гасит ровно один платёж.
func (o *Order) PayInstallment() error {
	if o.InstallmentsRemaining <= 0 {
		return ErrNoRemainingInstallments
	}
	o.InstallmentsRemaining--
	o.RefreshStatus()
	return nil
}

// RefreshStatus выводит статус из числа оставшихся платежей.
// Статус никогда не выставляется снаружи напрямую.
func (o *Order) RefreshStatus() {
	if o.InstallmentsRemaining == 0 {
		o.Status = PaymentStatusPaid
	} else {
		o.Status = PaymentStatusPending
	}
}
