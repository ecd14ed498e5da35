package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finown/internal/errors"
	"finown/internal/models"
	"finown/internal/pagination"
	"finown/internal/schedule"
)

// productService handles product-related business logic.
type productService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB) ProductServicer {
	return &productService{db: db}
}

// CreateProduct creates a card or loan under one of the user's banks.
func (s *productService) CreateProduct(userID, bankID uint, productType models.ProductType, name string, fields ProductFields) (*models.Product, error) {
	// Verify bank exists and belongs to user
	var bank models.Bank
	if err := s.db.Where("id = ? AND user_id = ?", bankID, userID).First(&bank).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if productType != models.ProductTypeCard && productType != models.ProductTypeLoan {
		return nil, apperrors.ErrInvalidProductType
	}

	product := &models.Product{
		UserID:            userID,
		BankID:            bankID,
		Type:              productType,
		Name:              name,
		Last4Digits:       fields.Last4Digits,
		Limit:             fields.Limit,
		CutoffDay:         fields.CutoffDay,
		PaymentDueDay:     fields.PaymentDueDay,
		InstallmentAmount: fields.InstallmentAmount,
		TotalInstallments: fields.TotalInstallments,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return product, nil
}

// GetUserProducts returns a paginated list of products with an optional type filter.
func (s *productService) GetUserProducts(userID uint, page pagination.PageRequest, productType *models.ProductType) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()

	base := s.db.Model(&models.Product{}).Where("user_id = ?", userID)
	if productType != nil {
		base = base.Where("type = ?", *productType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var products []models.Product
	if err := base.Preload("Bank").Scopes(pagination.Paginate(page)).Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(products, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetProductByID returns a product by ID if it belongs to the user.
func (s *productService) GetProductByID(userID, productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Bank").Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &product, nil
}

// UpdateProduct updates an existing product's fields.
func (s *productService) UpdateProduct(userID, productID uint, name string, fields ProductFields) (*models.Product, error) {
	product, err := s.GetProductByID(userID, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"last4_digits":       fields.Last4Digits,
		"limit":              fields.Limit,
		"cutoff_day":         fields.CutoffDay,
		"payment_due_day":    fields.PaymentDueDay,
		"installment_amount": fields.InstallmentAmount,
		"total_installments": fields.TotalInstallments,
	}
	if name != "" {
		updates["name"] = name
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return product, nil
}

// DeleteProduct soft-deletes a product and its payment rows.
func (s *productService) DeleteProduct(userID, productID uint) error {
	product, err := s.GetProductByID(userID, productID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.Payment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(product).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// BestCards ranks the user's credit cards by billing-cycle advantage for
// the given day. Cards without both cycle days configured are skipped by
// the ranking core.
func (s *productService) BestCards(userID uint, today time.Time) ([]BestCardEntry, error) {
	var products []models.Product
	if err := s.db.Preload("Bank").
		Where("user_id = ? AND type = ?", userID, models.ProductTypeCard).
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cards := make([]schedule.Card, 0, len(products))
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
		cards = append(cards, schedule.Card{
			ID:            p.ID,
			CutoffDay:     p.CutoffDay,
			PaymentDueDay: p.PaymentDueDay,
		})
	}

	ranked := schedule.RankCards(cards, today)

	entries := make([]BestCardEntry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, BestCardEntry{
			Product:       byID[r.Card.ID],
			Cutoff:        r.Cutoff,
			Payment:       r.Payment,
			DaysToCutoff:  r.DaysToCutoff,
			DaysToPayment: r.DaysToPayment,
		})
	}
	return entries, nil
}

// Summary aggregates the user's total card limit and outstanding loan debt.
// Loan debt is the installment plan total minus the installments already
// paid, floored at zero per loan.
func (s *productService) Summary(userID uint) (*ProductSummary, error) {
	var products []models.Product
	if err := s.db.Where("user_id = ?", userID).Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &ProductSummary{
		TotalCardLimit: decimal.Zero,
		TotalLoanDebt:  decimal.Zero,
	}

	for _, p := range products {
		switch p.Type {
		case models.ProductTypeCard:
			summary.TotalCardLimit = summary.TotalCardLimit.Add(p.Limit)
		case models.ProductTypeLoan:
			var paidCount int64
			if err := s.db.Model(&models.Payment{}).
				Where("product_id = ? AND is_paid = ?", p.ID, true).
				Count(&paidCount).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			total := p.InstallmentAmount.Mul(decimal.NewFromInt(int64(p.TotalInstallments)))
			remaining := total.Sub(p.InstallmentAmount.Mul(decimal.NewFromInt(paidCount)))
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			summary.TotalLoanDebt = summary.TotalLoanDebt.Add(remaining)
		}
	}

	return summary, nil
}
