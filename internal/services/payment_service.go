package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finown/internal/errors"
	"finown/internal/models"
	"finown/internal/pagination"
)

// paymentService handles installment payment rows.
type paymentService struct {
	db *gorm.DB
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB) PaymentServicer {
	return &paymentService{db: db}
}

func (s *paymentService) ownedProduct(userID, productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &product, nil
}

// CreatePayment creates one payment row under the user's product.
func (s *paymentService) CreatePayment(userID, productID uint, amount decimal.Decimal, dueDate string, installmentNo int, description string) (*models.Payment, error) {
	if _, err := s.ownedProduct(userID, productID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		UserID:        userID,
		ProductID:     productID,
		Amount:        amount,
		DueDate:       dueDate,
		InstallmentNo: installmentNo,
		Description:   description,
	}

	if err := s.db.Create(payment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payment, nil
}

// CreatePayments inserts a batch of payment rows, typically a full
// installment plan, in a single transaction.
func (s *paymentService) CreatePayments(userID, productID uint, payments []models.Payment) ([]models.Payment, error) {
	if _, err := s.ownedProduct(userID, productID); err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return []models.Payment{}, nil
	}

	for i := range payments {
		payments[i].UserID = userID
		payments[i].ProductID = productID
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&payments).Error
	}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payments, nil
}

// GetProductPayments returns a paginated list of a product's payments
// ordered by installment number.
func (s *paymentService) GetProductPayments(userID, productID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
	if _, err := s.ownedProduct(userID, productID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Payment{}).Where("product_id = ?", productID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.Payment
	if err := base.Scopes(pagination.Paginate(page)).Order("installment_no ASC, id ASC").Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdatePayment updates the mutable fields of a payment row. Nil fields
// are left unchanged.
func (s *paymentService) UpdatePayment(userID, paymentID uint, amount *decimal.Decimal, dueDate *string, isPaid *bool) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Where("id = ? AND user_id = ?", paymentID, userID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if amount != nil {
		updates["amount"] = *amount
	}
	if dueDate != nil {
		updates["due_date"] = *dueDate
	}
	if isPaid != nil {
		updates["is_paid"] = *isPaid
	}
	if len(updates) == 0 {
		return &payment, nil
	}

	if err := s.db.Model(&payment).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &payment, nil
}

// DeletePayment soft-deletes one payment row.
func (s *paymentService) DeletePayment(userID, paymentID uint) error {
	var payment models.Payment
	if err := s.db.Where("id = ? AND user_id = ?", paymentID, userID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPaymentNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&payment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteProductPayments removes the whole payment plan of a product.
func (s *paymentService) DeleteProductPayments(userID, productID uint) error {
	if _, err := s.ownedProduct(userID, productID); err != nil {
		return err
	}

	if err := s.db.Where("product_id = ?", productID).Delete(&models.Payment{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
