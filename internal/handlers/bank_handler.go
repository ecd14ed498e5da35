package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finown/internal/errors"
	"finown/internal/pagination"
	"finown/internal/services"
)

// BankHandler handles bank-related requests.
type BankHandler struct {
	bankService  services.BankServicer
	auditService services.AuditServicer
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService services.BankServicer, auditService services.AuditServicer) *BankHandler {
	return &BankHandler{bankService: bankService, auditService: auditService}
}

// CreateBankRequest represents the request payload for creating a bank
type CreateBankRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Color string `json:"color" binding:"omitempty,hex_color"`
}

// UpdateBankRequest represents the request payload for updating a bank
type UpdateBankRequest struct {
	Name  string `json:"name" binding:"omitempty,min=1,max=100"`
	Color string `json:"color" binding:"omitempty,hex_color"`
}

// CreateBank handles the creation of a new bank
// @Summary     Create a bank
// @Description Create a new bank for the authenticated user
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBankRequest true "Bank details"
// @Success     201 {object} models.Bank "Bank created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /banks [post]
func (h *BankHandler) CreateBank(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bank, err := h.bankService.CreateBank(userID, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BANK", "bank", bank.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"bank": bank})
}

// GetBanks returns the user's banks
// @Summary     List banks
// @Description Get a paginated list of the authenticated user's banks
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Bank] "Banks"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /banks [get]
func (h *BankHandler) GetBanks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.bankService.GetUserBanks(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBank returns one bank
// @Summary     Get a bank
// @Description Get one of the authenticated user's banks by ID
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bank ID"
// @Success     200 {object} models.Bank "Bank"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /banks/{id} [get]
func (h *BankHandler) GetBank(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bankID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bank, err := h.bankService.GetBankByID(userID, bankID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank": bank})
}

// UpdateBank updates a bank
// @Summary     Update a bank
// @Description Update one of the authenticated user's banks
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bank ID"
// @Param       request body UpdateBankRequest true "Fields to update"
// @Success     200 {object} models.Bank "Bank updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /banks/{id} [put]
func (h *BankHandler) UpdateBank(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bankID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bank, err := h.bankService.UpdateBank(userID, bankID, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BANK", "bank", bank.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "color": req.Color})

	c.JSON(http.StatusOK, gin.H{"bank": bank})
}

// DeleteBank deletes a bank
// @Summary     Delete a bank
// @Description Delete one of the authenticated user's banks. Banks with products attached are refused.
// @Tags        banks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bank ID"
// @Success     200 {object} MessageResponse "Bank deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Bank still has products"
// @Router      /banks/{id} [delete]
func (h *BankHandler) DeleteBank(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bankID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.bankService.DeleteBank(userID, bankID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BANK", "bank", bankID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Bank deleted"})
}
