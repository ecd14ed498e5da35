package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finown/internal/handlers"
	"finown/internal/logger"
	"finown/internal/middleware"
	"finown/internal/models"
	"finown/internal/services"
	"finown/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Bank{},
		&models.Product{},
		&models.Source{},
		&models.Payment{},
		&models.TrackerEntry{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	bankService := services.NewBankService(db)
	productService := services.NewProductService(db)
	sourceService := services.NewSourceService(db)
	trackerService := services.NewTrackerService(db)
	paymentService := services.NewPaymentService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	bankHandler := handlers.NewBankHandler(bankService, auditService)
	productHandler := handlers.NewProductHandler(productService, auditService)
	sourceHandler := handlers.NewSourceHandler(sourceService, auditService)
	trackerHandler := handlers.NewTrackerHandler(trackerService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	banks := protected.Group("/banks")
	banks.POST("", bankHandler.CreateBank)
	banks.GET("", bankHandler.GetBanks)
	banks.GET("/:id", bankHandler.GetBank)
	banks.PUT("/:id", bankHandler.UpdateBank)
	banks.DELETE("/:id", bankHandler.DeleteBank)

	// Static paths before /:id so gin routes them first.
	products := protected.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.GetProducts)
	products.GET("/best-cards", productHandler.GetBestCards)
	products.GET("/summary", productHandler.GetSummary)
	products.GET("/:id", productHandler.GetProduct)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)
	products.POST("/:id/payments", paymentHandler.CreatePayment)
	products.POST("/:id/payments/bulk", paymentHandler.CreatePayments)
	products.GET("/:id/payments", paymentHandler.GetPayments)
	products.DELETE("/:id/payments", paymentHandler.DeletePayments)

	sources := protected.Group("/sources")
	sources.POST("", sourceHandler.CreateSource)
	sources.GET("", sourceHandler.GetSources)
	sources.GET("/occurrences", sourceHandler.GetOccurrences)
	sources.GET("/:id", sourceHandler.GetSource)
	sources.PUT("/:id", sourceHandler.UpdateSource)
	sources.DELETE("/:id", sourceHandler.DeleteSource)

	trackers := protected.Group("/trackers")
	trackers.GET("", trackerHandler.GetTracker)
	trackers.PUT("/:key/toggle", trackerHandler.Toggle)

	payments := protected.Group("/payments")
	payments.PUT("/:id", paymentHandler.UpdatePayment)
	payments.DELETE("/:id", paymentHandler.DeletePayment)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createBank creates a bank and returns its ID.
func (app *testApp) createBank(t *testing.T, token, name string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/banks",
		fmt.Sprintf(`{"name":%q,"color":"#1a73e8"}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bank failed: %d %s", rec.Code, rec.Body.String())
	}
	bank := parseJSON(t, rec)["bank"].(map[string]interface{})
	return bank["id"].(float64)
}

// createCard creates a credit card product and returns its ID.
func (app *testApp) createCard(t *testing.T, token string, bankID float64, name string, cutoffDay, paymentDueDay int) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"bank_id":%.0f,"type":"card","name":%q,"last4_digits":"4242","limit":"5000","cutoff_day":%d,"payment_due_day":%d}`,
		bankID, name, cutoffDay, paymentDueDay)
	rec := app.request("POST", "/api/v1/products", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create card failed: %d %s", rec.Code, rec.Body.String())
	}
	product := parseJSON(t, rec)["product"].(map[string]interface{})
	return product["id"].(float64)
}
