package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/insight"
	"finance_tracker/internal/middleware"
	"finance_tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// newTestRouter wires the full route table against a throwaway SQLite
// database, no Redis, and the given insight client (nil is fine for
// tests that never hit the insights endpoint)
func newTestRouter(t *testing.T, insightClient *insight.Client) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Transaction{}))
	st := store.New(db)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.POST("/api/auth/register", RegisterHandler(st, testJWTSecret))
	r.POST("/api/auth/login", LoginHandler(st, testJWTSecret))

	authGroup := r.Group("/api")
	authGroup.Use(middleware.JWTAuthMiddleware(testJWTSecret))
	authGroup.GET("/transactions", ListTransactionsHandler(st, nil))
	authGroup.POST("/transactions", CreateTransactionHandler(st, nil))
	authGroup.PUT("/transactions/:id", UpdateTransactionHandler(st, nil))
	authGroup.DELETE("/transactions/:id", DeleteTransactionHandler(st, nil))
	authGroup.GET("/categories", CategoriesHandler(st, nil))
	authGroup.GET("/summary/monthly", MonthlySummaryHandler(st, nil))
	authGroup.GET("/summary/category", CategorySummaryHandler(st, nil))
	authGroup.POST("/ai/insights", InsightsHandler(st, insightClient))

	return r, st
}

// doRequest performs a JSON request against the router, attaching the
// bearer token when one is given
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response into dest
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// registerTestUser registers a user through the API and returns the token
func registerTestUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "secret123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp AuthResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// userCategories fetches the user's categories through the API
func userCategories(t *testing.T, r *gin.Engine, token string) []domain.Category {
	t.Helper()
	w := doRequest(t, r, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []domain.Category
	decodeBody(t, w, &categories)
	return categories
}
