package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finown/internal/errors"
	"finown/internal/models"
	"finown/internal/pagination"
)

// bankService handles bank-related business logic.
type bankService struct {
	db *gorm.DB
}

// NewBankService creates a new BankServicer.
func NewBankService(db *gorm.DB) BankServicer {
	return &bankService{db: db}
}

// CreateBank creates a new bank for the user.
func (s *bankService) CreateBank(userID uint, name, color string) (*models.Bank, error) {
	bank := &models.Bank{
		UserID: userID,
		Name:   name,
		Color:  color,
	}

	if err := s.db.Create(bank).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bank, nil
}

// GetUserBanks returns a paginated list of the user's banks.
func (s *bankService) GetUserBanks(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Bank], error) {
	page.Defaults()

	base := s.db.Model(&models.Bank{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var banks []models.Bank
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at ASC").Find(&banks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(banks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBankByID returns a bank by ID if it belongs to the user.
func (s *bankService) GetBankByID(userID, bankID uint) (*models.Bank, error) {
	var bank models.Bank
	if err := s.db.Where("id = ? AND user_id = ?", bankID, userID).First(&bank).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bank, nil
}

// UpdateBank updates an existing bank's fields.
func (s *bankService) UpdateBank(userID, bankID uint, name, color string) (*models.Bank, error) {
	bank, err := s.GetBankByID(userID, bankID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := s.db.Model(bank).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return bank, nil
}

// DeleteBank soft-deletes a bank. Banks with products attached are refused;
// the products must be moved or deleted first.
func (s *bankService) DeleteBank(userID, bankID uint) error {
	bank, err := s.GetBankByID(userID, bankID)
	if err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("bank_id = ?", bankID).Count(&productCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if productCount > 0 {
		return apperrors.ErrBankInUse
	}

	if err := s.db.Delete(bank).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
