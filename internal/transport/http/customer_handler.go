package http

import (
	"net/http"
	"strconv"

	"loja-backend/internal/dto"
	"loja-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customers service.CustomerService
	log       *zap.Logger
}

func NewCustomerHandler(customers service.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, log: log}
}

// Create godoc
// @Summary Создать клиента
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CustomerRequest true "Данные клиента"
// @Success 201 {object} models.Customer
// @Failure 400 {object} dto.ValidationErrorResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	customer, err := h.customers.CreateCustomer(c.Request.Context(), service.CustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// List godoc
// @Summary Список клиентов
// @Tags customers
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.CustomerListResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	customers, total, err := h.customers.ListCustomers(c.Request.Context(), limit, offset)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.CustomerListResponse{Customers: customers, Total: total})
}

// GetOne godoc
// @Summary Клиент по id
// @Tags customers
// @Produce json
// @Param id path string true "ID клиента"
// @Success 200 {object} models.Customer
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid customer id", nil))
		return
	}

	customer, err := h.customers.GetCustomer(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Update godoc
// @Summary Обновить клиента
// @Description Полная перезапись карточки клиента
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "ID клиента"
// @Param customer body dto.CustomerRequest true "Данные клиента"
// @Success 200 {object} models.Customer
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid customer id", nil))
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	customer, err := h.customers.UpdateCustomer(c.Request.Context(), id, service.CustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Delete godoc
// @Summary Удалить клиента
// @Description Удаляет клиента вместе с его заказами и позициями
// @Tags customers
// @Param id path string true "ID клиента"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid customer id", nil))
		return
	}

	if err := h.customers.DeleteCustomer(c.Request.Context(), id); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
