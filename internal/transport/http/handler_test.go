package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loja-backend/internal/models"
	"loja-backend/internal/service"
	"loja-backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthService struct {
	RegisterFunc func(ctx context.Context, username, password string) (*service.AuthResult, error)
	LoginFunc    func(ctx context.Context, username, password string) (*service.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*service.AuthResult, error) {
	return s.RegisterFunc(ctx, username, password)
}
func (s *stubAuthService) Login(ctx context.Context, username, password string) (*service.AuthResult, error) {
	return s.LoginFunc(ctx, username, password)
}

type stubCustomerService struct {
	CreateCustomerFunc func(ctx context.Context, in service.CustomerInput) (*models.Customer, error)
	GetCustomerFunc    func(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	DeleteCustomerFunc func(ctx context.Context, id uuid.UUID) error
}

func (s *stubCustomerService) CreateCustomer(ctx context.Context, in service.CustomerInput) (*models.Customer, error) {
	return s.CreateCustomerFunc(ctx, in)
}
func (s *stubCustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.GetCustomerFunc(ctx, id)
}
func (s *stubCustomerService) ListCustomers(ctx context.Context, limit, offset int) ([]models.Customer, int64, error) {
	return nil, 0, nil
}
func (s *stubCustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, in service.CustomerInput) (*models.Customer, error) {
	return nil, service.ErrCustomerNotFound
}
func (s *stubCustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.DeleteCustomerFunc(ctx, id)
}

type stubOrderService struct {
	CreateOrderFunc    func(ctx context.Context, in service.CreateOrderInput) (*models.Order, error)
	GetOrderFunc       func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersFunc     func(ctx context.Context, f service.ListFilter) ([]models.Order, int64, error)
	UpdateOrderFunc    func(ctx context.Context, id uuid.UUID, in service.UpdateOrderInput) (*models.Order, error)
	PayInstallmentFunc func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	DeleteOrderFunc    func(ctx context.Context, id uuid.UUID) error
}

func (s *stubOrderService) CreateOrder(ctx context.Context, in service.CreateOrderInput) (*models.Order, error) {
	return s.CreateOrderFunc(ctx, in)
}
func (s *stubOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.GetOrderFunc(ctx, id)
}
func (s *stubOrderService) ListOrders(ctx context.Context, f service.ListFilter) ([]models.Order, int64, error) {
	if s.ListOrdersFunc != nil {
		return s.ListOrdersFunc(ctx, f)
	}
	return nil, 0, nil
}
func (s *stubOrderService) UpdateOrder(ctx context.Context, id uuid.UUID, in service.UpdateOrderInput) (*models.Order, error) {
	return s.UpdateOrderFunc(ctx, id, in)
}
func (s *stubOrderService) PayInstallment(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.PayInstallmentFunc(ctx, id)
}
func (s *stubOrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.DeleteOrderFunc(ctx, id)
}

type testEnv struct {
	router *gin.Engine
	bearer string
}

func newTestEnv(t *testing.T, orders service.OrderService, customers service.CustomerService, auth service.AuthService) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := token.NewHSProvider("test-secret", "login-auth-api")
	access, _, err := tokens.SignAccess(context.Background(), uuid.New(), "maria", 2*time.Hour)
	require.NoError(t, err)

	r := Router(Services{
		Auth:      auth,
		Customers: customers,
		Orders:    orders,
		Tokens:    tokens,
	}, zap.NewNop())

	return testEnv{router: r, bearer: "Bearer " + access}
}

func (e testEnv) do(t *testing.T, method, path string, body any, authz string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, &stubOrderService{}, &stubCustomerService{}, &stubAuthService{})
	w := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t, &stubOrderService{}, &stubCustomerService{}, &stubAuthService{})

	w := env.do(t, http.MethodGet, "/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/orders", nil, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/orders", nil, env.bearer)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	userID := uuid.New()
	auth := &stubAuthService{
		RegisterFunc: func(ctx context.Context, username, password string) (*service.AuthResult, error) {
			return &service.AuthResult{
				UserID:      userID,
				Username:    username,
				AccessToken: "signed",
				ExpiresAt:   time.Now().Add(2 * time.Hour),
			}, nil
		},
	}
	env := newTestEnv(t, &stubOrderService{}, &stubCustomerService{}, auth)

	w := env.do(t, http.MethodPost, "/auth/register", gin.H{"username": "maria", "password": "senha123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "maria", resp["username"])
	assert.Equal(t, "signed", resp["access_token"])

	// короткий пароль режется валидацией до сервиса
	w = env.do(t, http.MethodPost, "/auth/register", gin.H{"username": "maria", "password": "12345"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint_Errors(t *testing.T) {
	auth := &stubAuthService{
		LoginFunc: func(ctx context.Context, username, password string) (*service.AuthResult, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	env := newTestEnv(t, &stubOrderService{}, &stubCustomerService{}, auth)

	w := env.do(t, http.MethodPost, "/auth/login", gin.H{"username": "maria", "password": "errada"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	auth.LoginFunc = func(ctx context.Context, username, password string) (*service.AuthResult, error) {
		return nil, service.ErrTooManyRequests
	}
	w = env.do(t, http.MethodPost, "/auth/login", gin.H{"username": "maria", "password": "senha123"}, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	orderID := uuid.New()
	custID := uuid.New()
	orders := &stubOrderService{
		CreateOrderFunc: func(ctx context.Context, in service.CreateOrderInput) (*models.Order, error) {
			require.Equal(t, custID, in.CustomerID)
			require.Equal(t, int32(5), in.InstallmentsTotal)
			require.Len(t, in.Items, 2)
			return &models.Order{
				ID:                    orderID,
				CustomerID:            custID,
				Status:                models.PaymentStatusPending,
				TotalCents:            2500,
				InstallmentsTotal:     5,
				InstallmentsRemaining: 5,
				InstallmentCents:      500,
				CurrencyCode:          "BRL",
			}, nil
		},
	}
	env := newTestEnv(t, orders, &stubCustomerService{}, &stubAuthService{})

	body := gin.H{
		"customer_id":        custID,
		"installments_total": 5,
		"items": []gin.H{
			{"product_name": "camiseta", "unit_price_cents": 1000, "quantity": 2},
			{"product_name": "bone", "unit_price_cents": 500, "quantity": 1},
		},
	}
	w := env.do(t, http.MethodPost, "/orders", body, env.bearer)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, orderID, resp.ID)
	assert.Equal(t, int64(2500), resp.TotalCents)
	assert.Equal(t, models.PaymentStatusPending, resp.Status)
}

func TestCreateOrderEndpoint_Errors(t *testing.T) {
	orders := &stubOrderService{
		CreateOrderFunc: func(ctx context.Context, in service.CreateOrderInput) (*models.Order, error) {
			return nil, service.ErrCustomerNotFound
		},
	}
	env := newTestEnv(t, orders, &stubCustomerService{}, &stubAuthService{})

	// без installments_total тело не проходит binding
	w := env.do(t, http.MethodPost, "/orders", gin.H{"customer_id": uuid.New()}, env.bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/orders", gin.H{"customer_id": uuid.New(), "installments_total": 3}, env.bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderEndpoint_InstallmentsReduced(t *testing.T) {
	orders := &stubOrderService{
		UpdateOrderFunc: func(ctx context.Context, id uuid.UUID, in service.UpdateOrderInput) (*models.Order, error) {
			return nil, models.ErrInstallmentsReduced
		},
	}
	env := newTestEnv(t, orders, &stubCustomerService{}, &stubAuthService{})

	w := env.do(t, http.MethodPut, "/orders/"+uuid.NewString(), gin.H{"installments_total": 3}, env.bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayInstallmentEndpoint(t *testing.T) {
	orderID := uuid.New()
	orders := &stubOrderService{
		PayInstallmentFunc: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			require.Equal(t, orderID, id)
			return &models.Order{ID: orderID, Status: models.PaymentStatusPaid}, nil
		},
	}
	env := newTestEnv(t, orders, &stubCustomerService{}, &stubAuthService{})

	w := env.do(t, http.MethodPut, "/orders/"+orderID.String()+"/pay-installment", nil, env.bearer)
	require.Equal(t, http.StatusOK, w.Code)

	orders.PayInstallmentFunc = func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
		return nil, models.ErrNoRemainingInstallments
	}
	w = env.do(t, http.MethodPut, "/orders/"+orderID.String()+"/pay-installment", nil, env.bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrderEndpoint(t *testing.T) {
	orders := &stubOrderService{
		DeleteOrderFunc: func(ctx context.Context, id uuid.UUID) error {
			return nil
		},
	}
	env := newTestEnv(t, orders, &stubCustomerService{}, &stubAuthService{})

	w := env.do(t, http.MethodDelete, "/orders/"+uuid.NewString(), nil, env.bearer)
	assert.Equal(t, http.StatusNoContent, w.Code)

	orders.DeleteOrderFunc = func(ctx context.Context, id uuid.UUID) error {
		return service.ErrOrderNotFound
	}
	w = env.do(t, http.MethodDelete, "/orders/"+uuid.NewString(), nil, env.bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersEndpoint_BadFilters(t *testing.T) {
	env := newTestEnv(t, &stubOrderService{}, &stubCustomerService{}, &stubAuthService{})

	w := env.do(t, http.MethodGet, "/orders?status=UNKNOWN", nil, env.bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/orders?customer_id=not-a-uuid", nil, env.bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerEndpoints(t *testing.T) {
	custID := uuid.New()
	customers := &stubCustomerService{
		CreateCustomerFunc: func(ctx context.Context, in service.CustomerInput) (*models.Customer, error) {
			return &models.Customer{ID: custID, Name: in.Name, Phone: in.Phone, Email: in.Email, Address: in.Address}, nil
		},
		GetCustomerFunc: func(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
			if id == custID {
				return &models.Customer{ID: custID, Name: "Maria"}, nil
			}
			return nil, service.ErrCustomerNotFound
		},
		DeleteCustomerFunc: func(ctx context.Context, id uuid.UUID) error {
			return service.ErrCustomerNotFound
		},
	}
	env := newTestEnv(t, &stubOrderService{}, customers, &stubAuthService{})

	body := gin.H{"name": "Maria", "phone": "+55 11 99999-0000", "email": "maria@example.com", "address": "Rua A, 10"}
	w := env.do(t, http.MethodPost, "/customers", body, env.bearer)
	require.Equal(t, http.StatusCreated, w.Code)

	// email обязателен и проверяется форматом
	w = env.do(t, http.MethodPost, "/customers", gin.H{"name": "x", "phone": "1", "email": "nope", "address": "y"}, env.bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/customers/"+custID.String(), nil, env.bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/customers/"+uuid.NewString(), nil, env.bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/customers/"+uuid.NewString(), nil, env.bearer)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		in    string
		token string
		ok    bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{`Bearer "abc"`, "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
	}
	for _, c := range cases {
		got, ok := ExtractBearerToken(c.in)
		if ok != c.ok || got != c.token {
			t.Fatalf("ExtractBearerToken(%q) = %q,%v want %q,%v", c.in, got, ok, c.token, c.ok)
		}
	}
}
