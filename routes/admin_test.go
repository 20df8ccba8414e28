package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// buildTestApp creates a minimal Iris app with the admin routes, a JWT
// verifier and an in-memory database behind storage.DB.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.Booking{},
		&models.Invoice{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	storage.DB = db
	storage.Redis = nil

	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/stats", AdminGetStats)
	}
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role, PropertyID: 1})
	return string(token)
}

func TestAdminStatsRBAC(t *testing.T) {
	app := buildTestApp(t)

	// No token -> rejected by the verifier
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Staff role -> 403
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("staff"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff role, got %d", resp2.Code)
	}

	// Manager role -> still 403, stats are admin-only
	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken("manager"))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager role, got %d", resp3.Code)
	}

	// Admin role -> 200 (empty counters OK)
	req4 := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req4.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	resp4 := httptest.NewRecorder()
	app.ServeHTTP(resp4, req4)
	if resp4.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp4.Code)
	}
}
