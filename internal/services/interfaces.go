package services

import (
	"time"

	"github.com/shopspring/decimal"

	"finown/internal/models"
	"finown/internal/pagination"
	"finown/internal/schedule"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// BankServicer defines the contract for bank-related business logic.
type BankServicer interface {
	CreateBank(userID uint, name, color string) (*models.Bank, error)
	GetUserBanks(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Bank], error)
	GetBankByID(userID, bankID uint) (*models.Bank, error)
	UpdateBank(userID, bankID uint, name, color string) (*models.Bank, error)
	DeleteBank(userID, bankID uint) error
}

// BestCardEntry describes one ranked card with its product details attached.
type BestCardEntry struct {
	Product       models.Product `json:"product"`
	Cutoff        time.Time      `json:"cutoff"`
	Payment       time.Time      `json:"payment"`
	DaysToCutoff  int            `json:"days_to_cutoff"`
	DaysToPayment int            `json:"days_to_payment"`
}

// ProductSummary aggregates the user's card limits and outstanding loan debt.
type ProductSummary struct {
	TotalCardLimit decimal.Decimal `json:"total_card_limit"`
	TotalLoanDebt  decimal.Decimal `json:"total_loan_debt"`
}

// ProductFields carries the optional attributes of a product create/update.
type ProductFields struct {
	Last4Digits       string
	Limit             decimal.Decimal
	CutoffDay         int
	PaymentDueDay     int
	InstallmentAmount decimal.Decimal
	TotalInstallments int
}

// ProductServicer defines the contract for product-related business logic.
type ProductServicer interface {
	CreateProduct(userID, bankID uint, productType models.ProductType, name string, fields ProductFields) (*models.Product, error)
	GetUserProducts(userID uint, page pagination.PageRequest, productType *models.ProductType) (*pagination.PageResponse[models.Product], error)
	GetProductByID(userID, productID uint) (*models.Product, error)
	UpdateProduct(userID, productID uint, name string, fields ProductFields) (*models.Product, error)
	DeleteProduct(userID, productID uint) error
	BestCards(userID uint, today time.Time) ([]BestCardEntry, error)
	Summary(userID uint) (*ProductSummary, error)
}

// MonthOccurrence is one materialized source instance for a view month,
// rehydrated with its stored source row. TrackerKey is included so the
// client can toggle completion without recomputing the key.
type MonthOccurrence struct {
	Source     models.Source `json:"source"`
	Date       time.Time     `json:"date"`
	IsDone     bool          `json:"is_done"`
	Recurring  bool          `json:"recurring"`
	TrackerKey string        `json:"tracker_key"`
}

// SourceFields carries the attributes of a source create/update.
type SourceFields struct {
	Kind       models.SourceKind
	Title      string
	Amount     decimal.Decimal
	Date       string
	StartDate  string
	EndDate    string
	DayOfMonth int
	Note       string
}

// SourceServicer defines the contract for source-related business logic.
type SourceServicer interface {
	CreateSource(userID uint, sourceType models.SourceType, fields SourceFields) (*models.Source, error)
	GetUserSources(userID uint, page pagination.PageRequest, sourceType *models.SourceType) (*pagination.PageResponse[models.Source], error)
	GetSourceByID(userID, sourceID uint) (*models.Source, error)
	UpdateSource(userID, sourceID uint, fields SourceFields) (*models.Source, error)
	DeleteSource(userID, sourceID uint) error
	MonthView(userID uint, sourceType *models.SourceType, month schedule.ViewMonth) ([]MonthOccurrence, error)
}

// TrackerServicer defines the contract for the completion tracker.
type TrackerServicer interface {
	GetAll(userID uint) (map[string]bool, error)
	Toggle(userID uint, key string) (bool, error)
}

// PaymentServicer defines the contract for installment payment rows.
type PaymentServicer interface {
	CreatePayment(userID, productID uint, amount decimal.Decimal, dueDate string, installmentNo int, description string) (*models.Payment, error)
	CreatePayments(userID, productID uint, payments []models.Payment) ([]models.Payment, error)
	GetProductPayments(userID, productID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error)
	UpdatePayment(userID, paymentID uint, amount *decimal.Decimal, dueDate *string, isPaid *bool) (*models.Payment, error)
	DeletePayment(userID, paymentID uint) error
	DeleteProductPayments(userID, productID uint) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
