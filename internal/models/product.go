package models

import "github.com/shopspring/decimal"

// ProductType represents the type of bank product
type ProductType string

const (
	ProductTypeCard ProductType = "card"
	ProductTypeLoan ProductType = "loan"
)

// Product represents a bank product: a credit card or an installment loan.
// Cycle fields (CutoffDay, PaymentDueDay) apply to cards and are left at
// zero when the user has not configured them; such cards are skipped by
// the best-card ranking.
type Product struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	BankID      uint            `gorm:"not null;index" json:"bank_id"`
	Type        ProductType     `gorm:"not null" json:"type"`
	Name        string          `gorm:"not null" json:"name"`
	Last4Digits string          `gorm:"size:4" json:"last4_digits,omitempty"`

	// Card fields
	Limit         decimal.Decimal `gorm:"type:numeric" json:"limit"`
	CutoffDay     int             `gorm:"default:0" json:"cutoff_day"`
	PaymentDueDay int             `gorm:"default:0" json:"payment_due_day"`

	// Loan fields
	InstallmentAmount decimal.Decimal `gorm:"type:numeric" json:"installment_amount"`
	TotalInstallments int             `gorm:"default:0" json:"total_installments"`

	// Relationships
	Bank     Bank      `gorm:"foreignKey:BankID" json:"bank,omitempty"`
	Payments []Payment `gorm:"foreignKey:ProductID" json:"payments,omitempty"`
}
