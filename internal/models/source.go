package models

import "github.com/shopspring/decimal"

// SourceType represents which ledger a source belongs to
type SourceType string

const (
	SourceTypeIncome       SourceType = "income"
	SourceTypeExpense      SourceType = "expense"
	SourceTypeSubscription SourceType = "subscription"
)

// SourceKind discriminates one-shot entries from recurring series
type SourceKind string

const (
	SourceKindOneTime   SourceKind = "one-time"
	SourceKindRecurring SourceKind = "recurring"
)

// Source is a user-defined template for a financial event: a one-time or
// recurring income, expense, or subscription. Date columns are stored as
// date strings exactly as the legacy system wrote them; the schedule core
// owns their interpretation, including the time-zone truncation
// compensations, so they are not parsed at the model layer.
type Source struct {
	Base
	UserID uint            `gorm:"not null;index" json:"user_id"`
	Type   SourceType      `gorm:"not null;index" json:"type"`
	Kind   SourceKind      `gorm:"not null" json:"kind"`
	Title  string          `gorm:"not null" json:"title"`
	Amount decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`

	Date       string `gorm:"size:32" json:"date,omitempty"`       // one-time date / fallback anchor
	StartDate  string `gorm:"size:32" json:"start_date,omitempty"` // recurring series anchor
	EndDate    string `gorm:"size:32" json:"end_date,omitempty"`   // last month to produce; empty = open
	DayOfMonth int    `gorm:"default:0" json:"day_of_month"`       // 1-31; 0 derives from anchor

	Note string `json:"note,omitempty"`
}
