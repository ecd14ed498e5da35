package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finown/internal/errors"
	"finown/internal/models"
	"finown/internal/pagination"
	"finown/internal/services"
)

// ProductHandler handles product-related requests.
type ProductHandler struct {
	productService services.ProductServicer
	auditService   services.AuditServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer, auditService services.AuditServicer) *ProductHandler {
	return &ProductHandler{productService: productService, auditService: auditService}
}

// MessageResponse represents a simple message response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateProductRequest represents the request payload for creating a product
type CreateProductRequest struct {
	BankID      uint               `json:"bank_id" binding:"required"`
	Type        models.ProductType `json:"type" binding:"required,product_type"`
	Name        string             `json:"name" binding:"required,min=1,max=100"`
	Last4Digits string             `json:"last4_digits" binding:"omitempty,len=4,numeric"`

	// Card fields
	Limit         decimal.Decimal `json:"limit"`
	CutoffDay     int             `json:"cutoff_day" binding:"omitempty,day_of_month"`
	PaymentDueDay int             `json:"payment_due_day" binding:"omitempty,day_of_month"`

	// Loan fields
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalInstallments int             `json:"total_installments" binding:"omitempty,gte=0"`
}

// UpdateProductRequest represents the request payload for updating a product
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"omitempty,min=1,max=100"`
	Last4Digits string `json:"last4_digits" binding:"omitempty,len=4,numeric"`

	Limit         decimal.Decimal `json:"limit"`
	CutoffDay     int             `json:"cutoff_day" binding:"omitempty,day_of_month"`
	PaymentDueDay int             `json:"payment_due_day" binding:"omitempty,day_of_month"`

	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalInstallments int             `json:"total_installments" binding:"omitempty,gte=0"`
}

// productListQuery holds the list endpoint's query parameters.
type productListQuery struct {
	pagination.PageRequest
	Type *models.ProductType `form:"type" binding:"omitempty,product_type"`
}

// CreateProduct handles the creation of a new product
// @Summary     Create a product
// @Description Create a new card or loan under one of the user's banks
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProductRequest true "Product details"
// @Success     201 {object} models.Product "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank not found"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(userID, req.BankID, req.Type, req.Name, services.ProductFields{
		Last4Digits:       req.Last4Digits,
		Limit:             req.Limit,
		CutoffDay:         req.CutoffDay,
		PaymentDueDay:     req.PaymentDueDay,
		InstallmentAmount: req.InstallmentAmount,
		TotalInstallments: req.TotalInstallments,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PRODUCT", "product", product.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type})

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProducts returns the user's products
// @Summary     List products
// @Description Get a paginated list of the authenticated user's products, optionally filtered by type
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       type query string false "Product type filter (card or loan)"
// @Success     200 {object} pagination.PageResponse[models.Product] "Products"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /products [get]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query productListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.productService.GetUserProducts(userID, query.PageRequest, query.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProduct returns one product
// @Summary     Get a product
// @Description Get one of the authenticated user's products by ID
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Success     200 {object} models.Product "Product"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.GetProductByID(userID, productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct updates a product
// @Summary     Update a product
// @Description Update one of the authenticated user's products
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Param       request body UpdateProductRequest true "Fields to update"
// @Success     200 {object} models.Product "Product updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	product, err := h.productService.UpdateProduct(userID, productID, req.Name, services.ProductFields{
		Last4Digits:       req.Last4Digits,
		Limit:             req.Limit,
		CutoffDay:         req.CutoffDay,
		PaymentDueDay:     req.PaymentDueDay,
		InstallmentAmount: req.InstallmentAmount,
		TotalInstallments: req.TotalInstallments,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PRODUCT", "product", product.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct deletes a product
// @Summary     Delete a product
// @Description Delete one of the authenticated user's products together with its payment plan
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Success     200 {object} MessageResponse "Product deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(userID, productID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PRODUCT", "product", productID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetBestCards returns the user's cards ranked by billing-cycle advantage
// @Summary     Rank cards by cycle advantage
// @Description Rank the user's credit cards by days until cutoff and payment, best float first
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       today query string false "Reference date (YYYY-MM-DD), defaults to the current day"
// @Success     200 {array} services.BestCardEntry "Ranked cards"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /products/best-cards [get]
func (h *ProductHandler) GetBestCards(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	today := time.Now()
	if raw := c.Query("today"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "today must be YYYY-MM-DD"))
			return
		}
		today = parsed
	}

	entries, err := h.productService.BestCards(userID, today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": entries})
}

// GetSummary returns the user's product totals
// @Summary     Product summary
// @Description Get the user's total card limit and outstanding loan debt
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ProductSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /products/summary [get]
func (h *ProductHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.productService.Summary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
