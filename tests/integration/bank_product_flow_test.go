package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBankProductFlow_CreateAndList(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "bankflow@test.com", "password123")

	// Step 1: Create a bank
	bankID := app.createBank(t, token, "BBVA")

	// Step 2: Create a card and a loan under it
	cardID := app.createCard(t, token, bankID, "Gold Card", 12, 2)

	rec := app.request("POST", "/api/v1/products",
		fmt.Sprintf(`{"bank_id":%.0f,"type":"loan","name":"Car Loan","installment_amount":"350","total_installments":24}`, bankID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating loan, got %d: %s", rec.Code, rec.Body.String())
	}
	loan := parseJSON(t, rec)["product"].(map[string]interface{})
	if loan["type"] != "loan" {
		t.Errorf("expected type loan, got %v", loan["type"])
	}
	if loan["total_installments"].(float64) != 24 {
		t.Errorf("expected 24 installments, got %v", loan["total_installments"])
	}

	// Step 3: List all products
	rec = app.request("GET", "/api/v1/products", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 2 {
		t.Errorf("expected 2 products, got %.0f", result["total_items"].(float64))
	}

	// Step 4: Filter by type
	rec = app.request("GET", "/api/v1/products?type=card", "", token)
	result = parseJSON(t, rec)
	if result["total_items"].(float64) != 1 {
		t.Errorf("expected 1 card, got %.0f", result["total_items"].(float64))
	}
	card := result["data"].([]interface{})[0].(map[string]interface{})
	if card["id"].(float64) != cardID {
		t.Errorf("expected card id %.0f, got %v", cardID, card["id"])
	}
	if card["last4_digits"] != "4242" {
		t.Errorf("expected last4 4242, got %v", card["last4_digits"])
	}

	// Step 5: Get the card by ID and check cycle days
	rec = app.request("GET", fmt.Sprintf("/api/v1/products/%.0f", cardID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := parseJSON(t, rec)["product"].(map[string]interface{})
	if got["cutoff_day"].(float64) != 12 || got["payment_due_day"].(float64) != 2 {
		t.Errorf("unexpected cycle days: cutoff=%v payment=%v", got["cutoff_day"], got["payment_due_day"])
	}
}

func TestBankProductFlow_UpdateProduct(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "prodedit@test.com", "password123")
	bankID := app.createBank(t, token, "Santander")
	cardID := app.createCard(t, token, bankID, "Old Name", 5, 25)

	// Updates carry the full field set, the same shape the edit form submits.
	rec := app.request("PUT", fmt.Sprintf("/api/v1/products/%.0f", cardID),
		`{"name":"New Name","last4_digits":"4242","limit":"5000","cutoff_day":10,"payment_due_day":25}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	product := parseJSON(t, rec)["product"].(map[string]interface{})
	if product["name"] != "New Name" {
		t.Errorf("expected updated name, got %v", product["name"])
	}
	if product["cutoff_day"].(float64) != 10 {
		t.Errorf("expected cutoff 10, got %v", product["cutoff_day"])
	}
	if product["payment_due_day"].(float64) != 25 {
		t.Errorf("expected payment day 25, got %v", product["payment_due_day"])
	}
}

func TestBankProductFlow_InvalidProductType(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "badtype@test.com", "password123")
	bankID := app.createBank(t, token, "Banorte")

	rec := app.request("POST", "/api/v1/products",
		fmt.Sprintf(`{"bank_id":%.0f,"type":"mortgage","name":"House"}`, bankID), token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBankProductFlow_DeleteBankInUse(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "bankdel@test.com", "password123")
	bankID := app.createBank(t, token, "HSBC")
	app.createCard(t, token, bankID, "Blocked", 1, 20)

	// Bank with products cannot be deleted
	rec := app.request("DELETE", fmt.Sprintf("/api/v1/banks/%.0f", bankID), "", token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "BANK_IN_USE" {
		t.Errorf("expected BANK_IN_USE, got %v", errObj["code"])
	}

	// Empty bank deletes fine
	emptyID := app.createBank(t, token, "Empty Bank")
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/banks/%.0f", emptyID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting empty bank, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBankProductFlow_DeleteProductRemovesPayments(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "proddel@test.com", "password123")
	bankID := app.createBank(t, token, "Scotiabank")

	rec := app.request("POST", "/api/v1/products",
		fmt.Sprintf(`{"bank_id":%.0f,"type":"loan","name":"Bike Loan","installment_amount":"100","total_installments":3}`, bankID), token)
	loanID := parseJSON(t, rec)["product"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", fmt.Sprintf("/api/v1/products/%.0f/payments/bulk", loanID),
		`{"payments":[{"amount":"100","installment_no":1},{"amount":"100","installment_no":2},{"amount":"100","installment_no":3}]}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 bulk creating payments, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/products/%.0f", loanID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting product, got %d: %s", rec.Code, rec.Body.String())
	}

	// Payments went with it
	rec = app.request("GET", fmt.Sprintf("/api/v1/products/%.0f/payments", loanID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d: %s", rec.Code, rec.Body.String())
	}
}
