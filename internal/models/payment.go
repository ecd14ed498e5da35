package models

import "github.com/shopspring/decimal"

// Payment is one installment row of a product's payment plan
type Payment struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	ProductID     uint            `gorm:"not null;index" json:"product_id"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	DueDate       string          `gorm:"size:32" json:"due_date"`
	InstallmentNo int             `gorm:"default:0" json:"installment_no"`
	IsPaid        bool            `gorm:"default:false" json:"is_paid"`
	Description   string          `json:"description,omitempty"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
