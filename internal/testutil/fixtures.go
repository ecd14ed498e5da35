package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finown/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBank creates a bank for the given user.
func CreateTestBank(t *testing.T, db *gorm.DB, userID uint) *models.Bank {
	t.Helper()

	bank := &models.Bank{
		UserID: userID,
		Name:   fmt.Sprintf("Test Bank %d", nextID()),
		Color:  "#1a73e8",
	}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("failed to create test bank: %v", err)
	}
	return bank
}

// CreateTestCard creates a card product with the given cycle days. Zero
// values leave the card out of the best-card ranking.
func CreateTestCard(t *testing.T, db *gorm.DB, userID, bankID uint, cutoffDay, paymentDueDay int) *models.Product {
	t.Helper()

	card := &models.Product{
		UserID:        userID,
		BankID:        bankID,
		Type:          models.ProductTypeCard,
		Name:          fmt.Sprintf("Test Card %d", nextID()),
		Last4Digits:   "4242",
		Limit:         decimal.NewFromInt(5000),
		CutoffDay:     cutoffDay,
		PaymentDueDay: paymentDueDay,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestLoan creates a loan product with the given installment plan.
func CreateTestLoan(t *testing.T, db *gorm.DB, userID, bankID uint, installmentAmount decimal.Decimal, totalInstallments int) *models.Product {
	t.Helper()

	loan := &models.Product{
		UserID:            userID,
		BankID:            bankID,
		Type:              models.ProductTypeLoan,
		Name:              fmt.Sprintf("Test Loan %d", nextID()),
		InstallmentAmount: installmentAmount,
		TotalInstallments: totalInstallments,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}

// CreateTestSource creates a source of the given type and kind. Date fields
// are set through the returned struct by the caller when needed.
func CreateTestSource(t *testing.T, db *gorm.DB, userID uint, sourceType models.SourceType, kind models.SourceKind) *models.Source {
	t.Helper()

	source := &models.Source{
		UserID: userID,
		Type:   sourceType,
		Kind:   kind,
		Title:  fmt.Sprintf("Test Source %d", nextID()),
		Amount: decimal.NewFromInt(100),
	}
	if err := db.Create(source).Error; err != nil {
		t.Fatalf("failed to create test source: %v", err)
	}
	return source
}

// CreateTestTrackerEntry creates a completion flag with the given key and value.
func CreateTestTrackerEntry(t *testing.T, db *gorm.DB, userID uint, key string, value bool) *models.TrackerEntry {
	t.Helper()

	entry := &models.TrackerEntry{
		UserID: userID,
		Key:    key,
		Value:  value,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test tracker entry: %v", err)
	}
	return entry
}

// CreateTestPayment creates a payment row for the given product.
func CreateTestPayment(t *testing.T, db *gorm.DB, userID, productID uint, installmentNo int, isPaid bool) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		UserID:        userID,
		ProductID:     productID,
		Amount:        decimal.NewFromInt(250),
		DueDate:       "2026-01-15",
		InstallmentNo: installmentNo,
		IsPaid:        isPaid,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}
