package dto

import "loja-backend/internal/models"

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address" binding:"required"`
	Notes   string `json:"notes"`
}

type CustomerListResponse struct {
	Customers []models.Customer `json:"customers"`
	Total     int64             `json:"total"`
}
