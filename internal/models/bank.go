package models

// Bank groups a user's financial products under one institution
type Bank struct {
	Base
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Color  string `json:"color"`

	// Relationships
	Products []Product `gorm:"foreignKey:BankID" json:"products,omitempty"`
}
