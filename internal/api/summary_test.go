package api

import (
	"net/http"
	"testing"

	"finance_tracker/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySummaryEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	token := registerTestUser(t, r, "alice@example.com")

	for _, body := range []gin.H{
		{"amount": 1000, "type": "income", "date": "2024-03-01"},
		{"amount": 50, "type": "expense", "date": "2024-03-10"},
		{"amount": "19.99", "type": "expense", "date": "2024-03-20"},
		{"amount": 500, "type": "income", "date": "2024-04-01"}, // other month
	} {
		createTestTransaction(t, r, token, body)
	}

	w := doRequest(t, r, http.MethodGet, "/api/summary/monthly?month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary []domain.TypeSummary
	decodeBody(t, w, &summary)
	require.Len(t, summary, 2)

	byType := map[string]domain.TypeSummary{}
	for _, row := range summary {
		byType[row.Type] = row
	}
	assert.True(t, byType["income"].Total.Equal(decimal.NewFromInt(1000)))
	assert.EqualValues(t, 1, byType["income"].Count)
	assert.True(t, byType["expense"].Total.Equal(decimal.RequireFromString("69.99")))
	assert.EqualValues(t, 2, byType["expense"].Count)
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	token := registerTestUser(t, r, "alice@example.com")

	// A month without transactions is an empty array, not an error
	w := doRequest(t, r, http.MethodGet, "/api/summary/monthly?month=1&year=2020", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary []domain.TypeSummary
	decodeBody(t, w, &summary)
	assert.Empty(t, summary)
}

func TestMonthlySummaryInvalidParams(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	token := registerTestUser(t, r, "alice@example.com")

	for _, query := range []string{"?month=13&year=2024", "?month=0&year=2024", "?month=abc&year=2024", "?month=3&year=xyz"} {
		w := doRequest(t, r, http.MethodGet, "/api/summary/monthly"+query, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %s", query)
	}
}

func TestCategorySummaryEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	token := registerTestUser(t, r, "alice@example.com")
	categories := userCategories(t, r, token)
	ids := map[string]uint{}
	for _, c := range categories {
		ids[c.Name] = c.ID
	}

	for _, body := range []gin.H{
		{"amount": 60, "categoryId": ids["Food"], "type": "expense", "date": "2024-03-01"},
		{"amount": 40, "categoryId": ids["Food"], "type": "expense", "date": "2024-03-02"},
		{"amount": 30, "categoryId": ids["Transport"], "type": "expense", "date": "2024-03-03"},
		{"amount": 10, "type": "expense", "date": "2024-03-04"},                          // uncategorized
		{"amount": 5000, "categoryId": ids["Work"], "type": "income", "date": "2024-03-05"}, // income excluded
	} {
		createTestTransaction(t, r, token, body)
	}

	w := doRequest(t, r, http.MethodGet, "/api/summary/category?month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary []domain.CategorySummary
	decodeBody(t, w, &summary)
	require.Len(t, summary, 3)

	// Ordered by total descending
	assert.Equal(t, "Food", summary[0].Category)
	assert.True(t, summary[0].Total.Equal(decimal.NewFromInt(100)))
	assert.EqualValues(t, 2, summary[0].Count)
	assert.InDelta(t, 71.4, summary[0].Percentage, 0.05)

	assert.Equal(t, "Transport", summary[1].Category)
	assert.InDelta(t, 21.4, summary[1].Percentage, 0.05)

	assert.Equal(t, "Uncategorized", summary[2].Category)
	assert.InDelta(t, 7.1, summary[2].Percentage, 0.05)

	// Percentages sum to ~100 modulo rounding
	sum := 0.0
	for _, row := range summary {
		sum += row.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.2)
}

func TestCategorySummarySingleExpense(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	token := registerTestUser(t, r, "alice@example.com")
	categories := userCategories(t, r, token)
	var foodID uint
	for _, c := range categories {
		if c.Name == "Food" {
			foodID = c.ID
		}
	}

	// A lone expense owns 100% of the month
	createTestTransaction(t, r, token, gin.H{
		"amount": 50, "categoryId": foodID, "type": "expense", "date": "2024-03-01",
	})

	w := doRequest(t, r, http.MethodGet, "/api/summary/category?month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary []domain.CategorySummary
	decodeBody(t, w, &summary)
	require.Len(t, summary, 1)
	assert.Equal(t, "Food", summary[0].Category)
	assert.True(t, summary[0].Total.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 100.0, summary[0].Percentage)

	// The by-type summary reports at least that expense total
	w = doRequest(t, r, http.MethodGet, "/api/summary/monthly?month=3&year=2024", token, nil)
	var monthly []domain.TypeSummary
	decodeBody(t, w, &monthly)
	require.Len(t, monthly, 1)
	assert.Equal(t, "expense", monthly[0].Type)
	assert.True(t, monthly[0].Total.GreaterThanOrEqual(decimal.NewFromInt(50)))
}

func TestCategorySummaryEmptyMonth(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	token := registerTestUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodGet, "/api/summary/category?month=1&year=2020", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary []domain.CategorySummary
	decodeBody(t, w, &summary)
	assert.Empty(t, summary)
}

func TestSummaryIsolation(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	aliceToken := registerTestUser(t, r, "alice@example.com")
	bobToken := registerTestUser(t, r, "bob@example.com")

	createTestTransaction(t, r, aliceToken, gin.H{
		"amount": 100, "type": "expense", "date": "2024-03-01",
	})

	w := doRequest(t, r, http.MethodGet, "/api/summary/monthly?month=3&year=2024", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary []domain.TypeSummary
	decodeBody(t, w, &summary)
	assert.Empty(t, summary, "summaries must only aggregate the caller's rows")
}
