package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"shop_system/internal/config"
	"shop_system/internal/domain"
	"shop_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	testDB     *gorm.DB
	testRDB    *redis.Client
	testRouter *gin.Engine
	testCfg    *config.Config
)

func setupTestDB() (*gorm.DB, error) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = "shop_user:Shop_Password$1234@tcp(localhost:3306)/shop_test?parseTime=true"
	}
	dbConn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Reset tables, children first so foreign keys don't block the drop
	_ = dbConn.Migrator().DropTable(
		&domain.OrderItem{}, &domain.Order{}, &domain.CartItem{},
		&domain.Product{}, &domain.Category{}, &domain.User{},
	)
	if err := dbConn.AutoMigrate(
		&domain.User{}, &domain.Category{}, &domain.Product{},
		&domain.CartItem{}, &domain.Order{}, &domain.OrderItem{},
	); err != nil {
		return nil, err
	}

	return dbConn, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testDB, err = setupTestDB()
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}

	redisAddr := os.Getenv("TEST_REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	testRDB = redis.NewClient(&redis.Options{Addr: redisAddr, DB: 1})
	if err := testRDB.Ping(context.Background()).Err(); err != nil {
		panic("failed to connect to test redis: " + err.Error())
	}
	// Stale cache from a previous run would poison listing assertions
	_ = testRDB.FlushDB(context.Background()).Err()

	uploadDir, err := os.MkdirTemp("", "shop-uploads")
	if err != nil {
		panic("failed to create upload dir: " + err.Error())
	}
	defer os.RemoveAll(uploadDir)

	testCfg = &config.Config{
		JWTSecret:  "test-secret",
		UploadDir:  uploadDir,
		CORSOrigin: "*",
	}
	testRouter = NewRouter(testDB, testRDB, testCfg)

	code := m.Run()
	os.Exit(code)
}

// flushCache clears cached listings so tests see fresh database state
func flushCache(t *testing.T) {
	t.Helper()
	if err := testRDB.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
}

// createTestUser inserts a user with the given role and returns it with a token
func createTestUser(t *testing.T, email string, role domain.Role) (domain.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("SecurePass123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := domain.User{Name: "Test User", Email: email, Password: string(hash), Role: role}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := utils.GenerateJWT(user.ID, user.Role, testCfg.JWTSecret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

// createTestCategory inserts a category directly
func createTestCategory(t *testing.T, name string) domain.Category {
	t.Helper()
	category := domain.Category{Name: name, Description: name + " category"}
	if err := testDB.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// createTestProduct inserts a product directly
func createTestProduct(t *testing.T, name string, price float64, stock int, categoryID string) domain.Product {
	t.Helper()
	product := domain.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Stock:       stock,
		ImageURL:    "/uploads/test.jpg",
		CategoryID:  categoryID,
	}
	if err := testDB.Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

// envelope mirrors the uniform JSON response shape
type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Errors  []utils.FieldError `json:"errors"`
}

// doJSON performs a JSON request against the test router
func doJSON(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

// doMultipart performs a multipart form request with optional image bytes
func doMultipart(t *testing.T, method, path string, fields map[string]string, image []byte, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "product.jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatalf("failed to write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

// decodeData unmarshals the envelope payload into dest
func decodeData(t *testing.T, env envelope, dest any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("failed to decode data %q: %v", string(env.Data), err)
	}
}

// expectStatus fails the test when the recorded status differs
func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
