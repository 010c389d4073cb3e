package http

import (
	"net/http"
	"strconv"

	"loja-backend/internal/dto"
	"loja-backend/internal/models"
	"loja-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func itemsFromRequest(reqItems []dto.OrderItemRequest) []service.CreateOrderItem {
	items := make([]service.CreateOrderItem, 0, len(reqItems))
	for _, it := range reqItems {
		var name string
		if it.ProductName != nil {
			name = *it.ProductName
		}
		items = append(items, service.CreateOrderItem{
			ProductName:    name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
			SizeLabel:      it.SizeLabel,
		})
	}
	return items
}

// Create godoc
// @Summary Создать заказ
// @Description Создаёт заказ для существующего клиента; сумма и размер платежа считаются по позициям
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Данные заказа"
// @Success 201 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		CustomerID:        req.CustomerID,
		Items:             itemsFromRequest(req.Items),
		InstallmentsTotal: req.InstallmentsTotal,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// List godoc
// @Summary Список заказов
// @Tags orders
// @Produce json
// @Param status query string false "Фильтр по статусу оплаты"
// @Param customer_id query string false "Фильтр по клиенту"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.OrderListResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var f service.ListFilter

	if s := c.Query("status"); s != "" {
		status := models.PaymentStatus(s)
		if status != models.PaymentStatusPending && status != models.PaymentStatusPaid {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("unknown payment status", nil))
			return
		}
		f.Status = &status
	}
	if s := c.Query("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid customer id", nil))
			return
		}
		f.CustomerID = &id
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{Orders: orders, Total: total})
}

// GetOne godoc
// @Summary Заказ по id
// @Tags orders
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {object} models.Order
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id", nil))
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// Update godoc
// @Summary Изменить заказ
// @Description Частичный патч: позиции (merge/добавление), число платежей, остаток платежей
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID заказа"
// @Param order body dto.UpdateOrderRequest true "Патч заказа"
// @Success 200 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id", nil))
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	var in service.UpdateOrderInput
	if req.Items != nil {
		in.Items = make([]service.UpdateOrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			in.Items = append(in.Items, service.UpdateOrderItem{
				ID:             it.ID,
				ProductName:    it.ProductName,
				UnitPriceCents: it.UnitPriceCents,
				Quantity:       it.Quantity,
				SizeLabel:      it.SizeLabel,
			})
		}
	}
	in.InstallmentsTotal = req.InstallmentsTotal
	in.InstallmentsRemaining = req.InstallmentsRemaining

	order, err := h.orders.UpdateOrder(c.Request.Context(), id, in)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// PayInstallment godoc
// @Summary Погасить один платёж
// @Description Уменьшает остаток платежей на 1; при нуле остатка заказ помечается оплаченным
// @Tags orders
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/pay-installment [put]
func (h *OrderHandler) PayInstallment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id", nil))
		return
	}

	order, err := h.orders.PayInstallment(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// Delete godoc
// @Summary Удалить заказ
// @Tags orders
// @Param id path string true "ID заказа"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id", nil))
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
