package testutil_test

import (
	"testing"

	"finown/internal/errors"
	"finown/internal/models"
	"finown/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "banks", "products", "sources", "payments", "tracker_entries", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	bank := testutil.CreateTestBank(t, db, user.ID)
	if bank.UserID != user.ID {
		t.Errorf("expected bank owner %d, got %d", user.ID, bank.UserID)
	}

	card := testutil.CreateTestCard(t, db, user.ID, bank.ID, 15, 5)
	if card.Type != models.ProductTypeCard {
		t.Errorf("expected card product type, got %s", card.Type)
	}
	if card.CutoffDay != 15 || card.PaymentDueDay != 5 {
		t.Errorf("expected cycle days 15/5, got %d/%d", card.CutoffDay, card.PaymentDueDay)
	}

	source := testutil.CreateTestSource(t, db, user.ID, models.SourceTypeExpense, models.SourceKindRecurring)
	if source.Kind != models.SourceKindRecurring {
		t.Errorf("expected recurring source, got %s", source.Kind)
	}

	entry := testutil.CreateTestTrackerEntry(t, db, user.ID, "1_0_2026", true)
	if !entry.Value {
		t.Error("expected tracker entry value true")
	}

	payment := testutil.CreateTestPayment(t, db, user.ID, card.ID, 1, false)
	if payment.InstallmentNo != 1 {
		t.Errorf("expected installment 1, got %d", payment.InstallmentNo)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBankNotFound, "custom message")
	testutil.AssertAppError(t, err, "BANK_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
