package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finown/internal/errors"
	"finown/internal/models"
	"finown/internal/pagination"
	"finown/internal/services"
)

// PaymentHandler handles installment payment requests.
type PaymentHandler struct {
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer, auditService services.AuditServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, auditService: auditService}
}

// CreatePaymentRequest represents the request payload for creating a payment
type CreatePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DueDate       string          `json:"due_date" binding:"omitempty,date_string"`
	InstallmentNo int             `json:"installment_no" binding:"omitempty,gte=0"`
	Description   string          `json:"description" binding:"max=500"`
}

// CreatePaymentsRequest represents a bulk payment plan creation payload
type CreatePaymentsRequest struct {
	Payments []CreatePaymentRequest `json:"payments" binding:"required,min=1,max=120,dive"`
}

// UpdatePaymentRequest represents the request payload for updating a payment
type UpdatePaymentRequest struct {
	Amount  *decimal.Decimal `json:"amount"`
	DueDate *string          `json:"due_date" binding:"omitempty,date_string"`
	IsPaid  *bool            `json:"is_paid"`
}

// CreatePayment adds one payment row to a product
// @Summary     Create a payment
// @Description Add one installment payment row to a product
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Param       request body CreatePaymentRequest true "Payment details"
// @Success     201 {object} models.Payment "Payment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
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

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payment, err := h.paymentService.CreatePayment(userID, productID, req.Amount, req.DueDate, req.InstallmentNo, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PAYMENT", "payment", payment.ID, c.ClientIP(),
		map[string]interface{}{"product_id": productID, "installment_no": req.InstallmentNo})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// CreatePayments adds a batch of payment rows to a product
// @Summary     Create a payment plan
// @Description Add a batch of installment payment rows to a product in one request
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Param       request body CreatePaymentsRequest true "Payment plan"
// @Success     201 {array} models.Payment "Payments created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/payments/bulk [post]
func (h *PaymentHandler) CreatePayments(c *gin.Context) {
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

	var req CreatePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan := make([]models.Payment, 0, len(req.Payments))
	for _, p := range req.Payments {
		plan = append(plan, models.Payment{
			Amount:        p.Amount,
			DueDate:       p.DueDate,
			InstallmentNo: p.InstallmentNo,
			Description:   p.Description,
		})
	}

	created, err := h.paymentService.CreatePayments(userID, productID, plan)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PAYMENT_PLAN", "product", productID, c.ClientIP(),
		map[string]interface{}{"count": len(created)})

	c.JSON(http.StatusCreated, gin.H{"payments": created})
}

// GetPayments returns a product's payment plan
// @Summary     List payments
// @Description Get a paginated list of a product's payment rows ordered by installment number
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Payment] "Payments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/payments [get]
func (h *PaymentHandler) GetPayments(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.paymentService.GetProductPayments(userID, productID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdatePayment updates one payment row
// @Summary     Update a payment
// @Description Update a payment's amount, due date, or paid flag
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Payment ID"
// @Param       request body UpdatePaymentRequest true "Fields to update"
// @Success     200 {object} models.Payment "Payment updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /payments/{id} [put]
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payment, err := h.paymentService.UpdatePayment(userID, paymentID, req.Amount, req.DueDate, req.IsPaid)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PAYMENT", "payment", payment.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// DeletePayment deletes one payment row
// @Summary     Delete a payment
// @Description Delete one payment row by ID
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Payment ID"
// @Success     200 {object} MessageResponse "Payment deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paymentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.paymentService.DeletePayment(userID, paymentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PAYMENT", "payment", paymentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// DeletePayments deletes a product's whole payment plan
// @Summary     Delete a payment plan
// @Description Delete all payment rows of a product
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Success     200 {object} MessageResponse "Payments deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/payments [delete]
func (h *PaymentHandler) DeletePayments(c *gin.Context) {
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

	if err := h.paymentService.DeleteProductPayments(userID, productID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PAYMENT_PLAN", "product", productID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Payments deleted"})
}
