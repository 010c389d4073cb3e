package repository_test

import (
	"context"
	"errors"
	"testing"

	"loja-backend/internal/migrate"
	"loja-backend/internal/models"
	"loja-backend/internal/repository"
	"loja-backend/pkg/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test, skipped in -short")
	}

	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateStoreDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.New(db)
}

func createCustomer(t *testing.T, repo *repository.Repository) *models.Customer {
	t.Helper()
	c := &models.Customer{
		Name:    "Maria",
		Phone:   "+55 11 99999-0000",
		Email:   "maria@example.com",
		Address: "Rua A, 10",
	}
	if err := repo.Customers.Create(context.Background(), c); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func buildOrder(t *testing.T, customerID uuid.UUID) *models.Order {
	t.Helper()
	o := &models.Order{
		CustomerID:            customerID,
		InstallmentsTotal:     5,
		InstallmentsRemaining: 5,
		CurrencyCode:          "BRL",
	}
	o.AddItem(models.OrderItem{ProductName: "camiseta", UnitPriceCents: 1000, Quantity: 2})
	o.AddItem(models.OrderItem{ProductName: "bone", UnitPriceCents: 500, Quantity: 1})
	if err := o.Recalculate(); err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	o.RefreshStatus()
	return o
}

func TestCustomerCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	c := createCustomer(t, repo)
	if c.ID == uuid.Nil {
		t.Fatal("id not generated")
	}

	got, err := repo.Customers.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Maria" {
		t.Fatalf("unexpected customer: %+v", got)
	}

	got.Name = "Maria Silva"
	got.Notes = "atualizada"
	if err := repo.Customers.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.Customers.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Name != "Maria Silva" || got.Notes != "atualizada" {
		t.Fatalf("update not applied: %+v", got)
	}

	list, total, err := repo.Customers.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("list expected 1 got total=%d len=%d", total, len(list))
	}

	deleted, err := repo.Customers.Delete(ctx, c.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 row deleted got %d", deleted)
	}

	got, err = repo.Customers.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("customer survived delete: %+v", got)
	}
}

func TestOrderAggregatePersistence(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	customer := createCustomer(t, repo)
	order := buildOrder(t, customer.ID)

	if err := repo.Orders.Create(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	got, err := repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got == nil {
		t.Fatal("order not found after create")
	}
	if got.TotalCents != 2500 || got.InstallmentCents != 500 {
		t.Fatalf("totals mismatch: %+v", got)
	}
	if got.Status != models.PaymentStatusPending {
		t.Fatalf("status expected PENDING got %s", got.Status)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items not preloaded: %d", len(got.Items))
	}

	// контрольная сумма на стороне БД совпадает с агрегатом
	sum, err := repo.OrderItems.SumByOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("sum by order: %v", err)
	}
	if sum != got.TotalCents {
		t.Fatalf("db sum %d != aggregate total %d", sum, got.TotalCents)
	}

	// гашение всех платежей и сохранение агрегата целиком
	for got.InstallmentsRemaining > 0 {
		if err := got.PayInstallment(); err != nil {
			t.Fatalf("pay: %v", err)
		}
	}
	if err := repo.Orders.Save(ctx, got); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if got.Status != models.PaymentStatusPaid || got.InstallmentsRemaining != 0 {
		t.Fatalf("paid state not persisted: %+v", got)
	}
}

func TestOrderList_Filters(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	maria := createCustomer(t, repo)
	joao := &models.Customer{Name: "Joao", Phone: "1", Email: "joao@example.com", Address: "Rua B"}
	if err := repo.Customers.Create(ctx, joao); err != nil {
		t.Fatalf("create customer: %v", err)
	}

	pending := buildOrder(t, maria.ID)
	if err := repo.Orders.Create(ctx, pending); err != nil {
		t.Fatalf("create pending: %v", err)
	}

	paid := buildOrder(t, joao.ID)
	paid.InstallmentsRemaining = 0
	paid.RefreshStatus()
	if err := repo.Orders.Create(ctx, paid); err != nil {
		t.Fatalf("create paid: %v", err)
	}

	all, total, err := repo.Orders.List(ctx, repository.OrderListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("expected 2 orders got total=%d len=%d", total, len(all))
	}

	st := models.PaymentStatusPaid
	byStatus, total, err := repo.Orders.List(ctx, repository.OrderListFilter{Status: &st})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if total != 1 || len(byStatus) != 1 || byStatus[0].ID != paid.ID {
		t.Fatalf("status filter broken: total=%d", total)
	}

	byCustomer, total, err := repo.Orders.List(ctx, repository.OrderListFilter{CustomerID: &maria.ID})
	if err != nil {
		t.Fatalf("list by customer: %v", err)
	}
	if total != 1 || len(byCustomer) != 1 || byCustomer[0].ID != pending.ID {
		t.Fatalf("customer filter broken: total=%d", total)
	}
}

// Удаление клиента уносит каскадом его заказы и их позиции.
func TestCustomerDelete_Cascade(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	customer := createCustomer(t, repo)
	order := buildOrder(t, customer.ID)
	if err := repo.Orders.Create(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	deleted, err := repo.Customers.Delete(ctx, customer.ID)
	if err != nil {
		t.Fatalf("delete customer: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 row deleted got %d", deleted)
	}

	gotOrder, err := repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if gotOrder != nil {
		t.Fatalf("order survived customer delete: %+v", gotOrder)
	}

	items, err := repo.OrderItems.GetByOrderID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items survived customer delete: %d", len(items))
	}
}

func TestOrderWithTx_Rollback(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	customer := createCustomer(t, repo)
	order := buildOrder(t, customer.ID)

	boom := errors.New("boom")
	err := repo.Orders.WithTx(ctx, func(or repository.OrderRepo, _ repository.OrderItemRepo) error {
		if err := or.Create(ctx, order); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom got %v", err)
	}

	got, err := repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("rolled back order is visible")
	}
}

func TestUserRepo(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := &models.User{Username: "Maria", Password: "hash"}
	if err := repo.Users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	// поиск без учёта регистра
	got, err := repo.Users.GetByUsername(ctx, "maria")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Fatalf("lookup failed: %+v", got)
	}

	exists, err := repo.Users.ExistsByUsername(ctx, "MARIA")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("exists expected true")
	}

	// уникальность по lower(username)
	dup := &models.User{Username: "mArIa", Password: "hash"}
	if err := repo.Users.Create(ctx, dup); err == nil {
		t.Fatal("duplicate username must be rejected")
	}
}
