package authController

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"foyer/config"
	"foyer/database"
	"foyer/middleware"
	"foyer/models"
	authValidator "foyer/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupAuthApp(t *testing.T, name string) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: bcrypt.MinCost, TokenTTL: 1}

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Transaction{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	database.Database = database.DbInstance{Db: db}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{Username: "user1", Password: string(hashed), DisplayName: "Utilisateur 1"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	app := fiber.New()
	app.Post("/auth/login", authValidator.Login(), Login)
	app.Get("/auth/me", middleware.JWTMiddleware, Me)
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) (*apiResponse, int) {
	t.Helper()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return &decoded, resp.StatusCode
}

func TestLogin_IssuesTokenWithIdentity(t *testing.T) {
	app := setupAuthApp(t, "auth_login_ok")

	decoded, status := postLogin(t, app, `{"username":"user1","password":"password123"}`)
	if status != fiber.StatusOK || !decoded.Status {
		t.Fatalf("status = %d/%v, want 200/true", status, decoded.Status)
	}

	var data struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	if err := json.Unmarshal(decoded.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.User.Username != "user1" || data.User.DisplayName != "Utilisateur 1" || data.User.ID == 0 {
		t.Fatalf("user payload = %+v", data.User)
	}

	token, err := jwt.Parse(data.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token parse: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if uint(claims["id"].(float64)) != data.User.ID || claims["username"] != "user1" || claims["display_name"] != "Utilisateur 1" {
		t.Fatalf("token claims = %+v", claims)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	app := setupAuthApp(t, "auth_login_fail")

	wrongPassword, wrongStatus := postLogin(t, app, `{"username":"user1","password":"nope12345"}`)
	unknownUser, unknownStatus := postLogin(t, app, `{"username":"ghost","password":"password123"}`)

	if wrongStatus != fiber.StatusUnauthorized || unknownStatus != fiber.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", wrongStatus, unknownStatus)
	}
	// Same generic message either way, no enumeration signal.
	if wrongPassword.Message != unknownUser.Message {
		t.Fatalf("messages differ: %q vs %q", wrongPassword.Message, unknownUser.Message)
	}
}

func TestLogin_ValidationReportsEveryField(t *testing.T) {
	app := setupAuthApp(t, "auth_login_validation")

	decoded, status := postLogin(t, app, `{}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}

	var fields map[string]string
	if err := json.Unmarshal(decoded.Data, &fields); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if _, ok := fields["username"]; !ok {
		t.Fatal("missing username violation")
	}
	if _, ok := fields["password"]; !ok {
		t.Fatal("missing password violation")
	}
}

func TestMe_ReturnsIdentityAnd404WhenGone(t *testing.T) {
	app := setupAuthApp(t, "auth_me")

	decoded, _ := postLogin(t, app, `{"username":"user1","password":"password123"}`)
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(decoded.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+data.Token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	// Token outlives the user row: identity no longer resolves.
	if err := database.Database.Db.Where("username = ?", "user1").Delete(&models.User{}).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	req = httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+data.Token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	// No credential at all is a 401, not a 404.
	req = httptest.NewRequest("GET", "/auth/me", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
