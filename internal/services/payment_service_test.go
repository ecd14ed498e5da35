package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"finown/internal/models"
	"finown/internal/pagination"
	"finown/internal/testutil"
)

func TestCreatePayment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestBank(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, user.ID, bank.ID, decimal.NewFromInt(300), 12)

		payment, err := svc.CreatePayment(user.ID, loan.ID, decimal.NewFromInt(300), "2026-05-01", 1, "first installment")
		testutil.AssertNoError(t, err)

		if payment.ID == 0 {
			t.Fatal("expected non-zero payment ID")
		}
		if payment.IsPaid {
			t.Error("expected new payment to be unpaid")
		}
		if payment.DueDate != "2026-05-01" {
			t.Errorf("expected due date 2026-05-01, got %q", payment.DueDate)
		}
	})

	t.Run("unknown_product", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreatePayment(user.ID, 9999, decimal.NewFromInt(300), "2026-05-01", 1, "")
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})
}

func TestCreatePayments(t *testing.T) {
	t.Run("bulk_insert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestBank(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, user.ID, bank.ID, decimal.NewFromInt(250), 3)

		plan := []models.Payment{
			{Amount: decimal.NewFromInt(250), DueDate: "2026-05-01", InstallmentNo: 1},
			{Amount: decimal.NewFromInt(250), DueDate: "2026-06-01", InstallmentNo: 2},
			{Amount: decimal.NewFromInt(250), DueDate: "2026-07-01", InstallmentNo: 3},
		}

		created, err := svc.CreatePayments(user.ID, loan.ID, plan)
		testutil.AssertNoError(t, err)

		if len(created) != 3 {
			t.Fatalf("expected 3 payments created, got %d", len(created))
		}
		for _, p := range created {
			if p.ProductID != loan.ID {
				t.Errorf("expected payment bound to product %d, got %d", loan.ID, p.ProductID)
			}
			if p.UserID != user.ID {
				t.Errorf("expected payment bound to user %d, got %d", user.ID, p.UserID)
			}
		}
	})

	t.Run("empty_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestBank(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, user.ID, bank.ID, decimal.NewFromInt(250), 3)

		created, err := svc.CreatePayments(user.ID, loan.ID, nil)
		testutil.AssertNoError(t, err)
		if len(created) != 0 {
			t.Errorf("expected no payments, got %d", len(created))
		}
	})
}

func TestGetProductPayments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPaymentService(db)
	user := testutil.CreateTestUser(t, db)
	bank := testutil.CreateTestBank(t, db, user.ID)
	loan := testutil.CreateTestLoan(t, db, user.ID, bank.ID, decimal.NewFromInt(300), 12)

	testutil.CreateTestPayment(t, db, user.ID, loan.ID, 2, false)
	testutil.CreateTestPayment(t, db, user.ID, loan.ID, 1, true)
	testutil.CreateTestPayment(t, db, user.ID, loan.ID, 3, false)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	result, err := svc.GetProductPayments(user.ID, loan.ID, page)
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Fatalf("expected 3 payments, got %d", result.TotalItems)
	}
	// Ordered by installment number.
	for i, p := range result.Data {
		if p.InstallmentNo != i+1 {
			t.Errorf("expected installment %d at index %d, got %d", i+1, i, p.InstallmentNo)
		}
	}
}

func TestUpdatePayment(t *testing.T) {
	t.Run("marks_paid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestBank(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, user.ID, bank.ID, decimal.NewFromInt(300), 12)
		payment := testutil.CreateTestPayment(t, db, user.ID, loan.ID, 1, false)

		isPaid := true
		updated, err := svc.UpdatePayment(user.ID, payment.ID, nil, nil, &isPaid)
		testutil.AssertNoError(t, err)

		if !updated.IsPaid {
			t.Error("expected payment marked paid")
		}
	})

	t.Run("nil_fields_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestBank(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, user.ID, bank.ID, decimal.NewFromInt(300), 12)
		payment := testutil.CreateTestPayment(t, db, user.ID, loan.ID, 1, false)

		updated, err := svc.UpdatePayment(user.ID, payment.ID, nil, nil, nil)
		testutil.AssertNoError(t, err)

		if !updated.Amount.Equal(payment.Amount) {
			t.Errorf("expected amount unchanged %s, got %s", payment.Amount, updated.Amount)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdatePayment(user.ID, 9999, nil, nil, nil)
		testutil.AssertAppError(t, err, "PAYMENT_NOT_FOUND")
	})
}

func TestDeleteProductPayments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPaymentService(db)
	user := testutil.CreateTestUser(t, db)
	bank := testutil.CreateTestBank(t, db, user.ID)
	loan := testutil.CreateTestLoan(t, db, user.ID, bank.ID, decimal.NewFromInt(300), 12)

	testutil.CreateTestPayment(t, db, user.ID, loan.ID, 1, false)
	testutil.CreateTestPayment(t, db, user.ID, loan.ID, 2, false)

	testutil.AssertNoError(t, svc.DeleteProductPayments(user.ID, loan.ID))

	var count int64
	if err := db.Model(&models.Payment{}).Where("product_id = ?", loan.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count payments: %v", err)
	}
	if count != 0 {
		t.Errorf("expected all payments removed, found %d", count)
	}
}
