package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finown/internal/errors"
	"finown/internal/models"
	"finown/internal/pagination"
	"finown/internal/services"
)

// --- mock bank service ---

type mockBankService struct {
	createBankFn   func(userID uint, name, color string) (*models.Bank, error)
	getUserBanksFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Bank], error)
	getBankByIDFn  func(userID, bankID uint) (*models.Bank, error)
	updateBankFn   func(userID, bankID uint, name, color string) (*models.Bank, error)
	deleteBankFn   func(userID, bankID uint) error
}

func (m *mockBankService) CreateBank(userID uint, name, color string) (*models.Bank, error) {
	if m.createBankFn != nil {
		return m.createBankFn(userID, name, color)
	}
	return &models.Bank{}, nil
}

func (m *mockBankService) GetUserBanks(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Bank], error) {
	if m.getUserBanksFn != nil {
		return m.getUserBanksFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Bank{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockBankService) GetBankByID(userID, bankID uint) (*models.Bank, error) {
	if m.getBankByIDFn != nil {
		return m.getBankByIDFn(userID, bankID)
	}
	return &models.Bank{}, nil
}

func (m *mockBankService) UpdateBank(userID, bankID uint, name, color string) (*models.Bank, error) {
	if m.updateBankFn != nil {
		return m.updateBankFn(userID, bankID, name, color)
	}
	return &models.Bank{}, nil
}

func (m *mockBankService) DeleteBank(userID, bankID uint) error {
	if m.deleteBankFn != nil {
		return m.deleteBankFn(userID, bankID)
	}
	return nil
}

var _ services.BankServicer = (*mockBankService)(nil)

func setupBankRouter(handler *BankHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/banks", handler.CreateBank)
	auth.GET("/banks", handler.GetBanks)
	auth.GET("/banks/:id", handler.GetBank)
	auth.PUT("/banks/:id", handler.UpdateBank)
	auth.DELETE("/banks/:id", handler.DeleteBank)
	return r
}

func TestBankHandler_CreateBank(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBankService{
			createBankFn: func(userID uint, name, color string) (*models.Bank, error) {
				return &models.Bank{Base: models.Base{ID: 1}, UserID: userID, Name: name, Color: color}, nil
			},
		}
		handler := NewBankHandler(svc, &mockAuditService{})
		r := setupBankRouter(handler)

		rec := doRequest(r, "POST", "/banks", `{"name":"BBVA","color":"#072146"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		bank := result["bank"].(map[string]interface{})
		if bank["name"] != "BBVA" {
			t.Errorf("expected BBVA, got %v", bank["name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewBankHandler(&mockBankService{}, &mockAuditService{})
		r := setupBankRouter(handler)

		rec := doRequest(r, "POST", "/banks", `{"color":"#072146"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad color", func(t *testing.T) {
		handler := NewBankHandler(&mockBankService{}, &mockAuditService{})
		r := setupBankRouter(handler)

		rec := doRequest(r, "POST", "/banks", `{"name":"BBVA","color":"blue"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBankHandler_GetBanks(t *testing.T) {
	t.Run("returns 200 with page", func(t *testing.T) {
		svc := &mockBankService{
			getUserBanksFn: func(_ uint, _ pagination.PageRequest) (*pagination.PageResponse[models.Bank], error) {
				resp := pagination.NewPageResponse([]models.Bank{
					{Base: models.Base{ID: 1}, Name: "BBVA"},
					{Base: models.Base{ID: 2}, Name: "Santander"},
				}, 1, 20, 2)
				return &resp, nil
			},
		}
		handler := NewBankHandler(svc, &mockAuditService{})
		r := setupBankRouter(handler)

		rec := doRequest(r, "GET", "/banks", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 2 {
			t.Errorf("expected 2 banks, got %d", len(data))
		}
	})
}

func TestBankHandler_GetBank(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockBankService{
			getBankByIDFn: func(_, _ uint) (*models.Bank, error) {
				return nil, apperrors.ErrBankNotFound
			},
		}
		handler := NewBankHandler(svc, &mockAuditService{})
		r := setupBankRouter(handler)

		rec := doRequest(r, "GET", "/banks/42", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BANK_NOT_FOUND")
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		handler := NewBankHandler(&mockBankService{}, &mockAuditService{})
		r := setupBankRouter(handler)

		rec := doRequest(r, "GET", "/banks/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBankHandler_DeleteBank(t *testing.T) {
	t.Run("returns 409 when bank in use", func(t *testing.T) {
		svc := &mockBankService{
			deleteBankFn: func(_, _ uint) error {
				return apperrors.ErrBankInUse
			},
		}
		handler := NewBankHandler(svc, &mockAuditService{})
		r := setupBankRouter(handler)

		rec := doRequest(r, "DELETE", "/banks/1", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BANK_IN_USE")
	})

	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewBankHandler(&mockBankService{}, &mockAuditService{})
		r := setupBankRouter(handler)

		rec := doRequest(r, "DELETE", "/banks/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
