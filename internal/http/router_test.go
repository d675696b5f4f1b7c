package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/category"
	apihttp "github.com/MrJamesThe3rd/cashflow/internal/http"
	backuphttp "github.com/MrJamesThe3rd/cashflow/internal/http/backup"
	categoryhttp "github.com/MrJamesThe3rd/cashflow/internal/http/category"
	matchinghttp "github.com/MrJamesThe3rd/cashflow/internal/http/matching"
	summaryhttp "github.com/MrJamesThe3rd/cashflow/internal/http/summary"
	transactionhttp "github.com/MrJamesThe3rd/cashflow/internal/http/transaction"
	"github.com/MrJamesThe3rd/cashflow/internal/matching"
	matchingstore "github.com/MrJamesThe3rd/cashflow/internal/matching/store"
	"github.com/MrJamesThe3rd/cashflow/internal/persist"
	"github.com/MrJamesThe3rd/cashflow/internal/slot/store"
)

type transactionBody struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

type summaryBody struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
	Formatted    struct {
		TotalIncome  string `json:"total_income"`
		TotalExpense string `json:"total_expense"`
		Balance      string `json:"balance"`
	} `json:"formatted"`
}

func newRouter(t *testing.T) (http.Handler, *app.State) {
	t.Helper()

	state := app.New(context.Background(), persist.New(store.NewMemory(), category.DefaultCategories))

	router := apihttp.New(apihttp.Handlers{
		Transactions: transactionhttp.NewHandler(state),
		Categories:   categoryhttp.NewHandler(state),
		Summary:      summaryhttp.NewHandler(state, amount.NewFormatter("en")),
		Matching:     matchinghttp.NewHandler(matching.NewService(matchingstore.New(state))),
		Backup:       backuphttp.NewHandler(state),
	}, []string{"http://localhost:5173"})

	return router, state
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())

	return v
}

func createTransaction(t *testing.T, h http.Handler, body string) transactionBody {
	t.Helper()

	rr := do(t, h, http.MethodPost, "/api/v1/transactions", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	return decode[transactionBody](t, rr)
}

func TestTransactions_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		wantStatus int
		wantAmount float64
		wantType   string
	}

	tests := []testCase{
		{
			name:       "numeric amount",
			body:       `{"date":"2024-04-01","amount":12.5,"category":"Food","description":"lunch","type":"expense"}`,
			wantStatus: http.StatusCreated,
			wantAmount: 12.5,
			wantType:   "expense",
		},
		{
			name:       "typed amount is sanitized",
			body:       `{"date":"2024-04-01","amount":"1,2a3.4.5","category":"Salary","type":"income"}`,
			wantStatus: http.StatusCreated,
			wantAmount: 123.45,
			wantType:   "income",
		},
		{
			name:       "stored label for type",
			body:       `{"date":"2024-04-01","amount":"3000","category":"Salary","type":"収入"}`,
			wantStatus: http.StatusCreated,
			wantAmount: 3000,
			wantType:   "income",
		},
		{
			name:       "unparseable amount becomes zero",
			body:       `{"date":"2024-04-01","amount":"abc","category":"Food"}`,
			wantStatus: http.StatusCreated,
			wantAmount: 0,
			wantType:   "expense",
		},
		{
			name:       "unknown category",
			body:       `{"date":"2024-04-01","amount":1,"category":"Rent"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad date",
			body:       `{"date":"01/04/2024","amount":1,"category":"Food"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad type",
			body:       `{"date":"2024-04-01","amount":1,"category":"Food","type":"transfer"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newRouter(t)

			rr := do(t, h, http.MethodPost, "/api/v1/transactions", tc.body)
			require.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())

			if tc.wantStatus != http.StatusCreated {
				return
			}

			got := decode[transactionBody](t, rr)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "2024-04-01", got.Date)
			assert.InDelta(t, tc.wantAmount, got.Amount, 0.001)
			assert.Equal(t, tc.wantType, got.Type)
		})
	}
}

func TestTransactions_RejectsNonJSON(t *testing.T) {
	h, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("amount=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestTransactions_GetUpdateDelete(t *testing.T) {
	h, state := newRouter(t)

	created := createTransaction(t, h, `{"date":"2024-04-01","amount":10,"category":"Food","description":"lunch"}`)

	rr := do(t, h, http.MethodGet, "/api/v1/transactions/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created, decode[transactionBody](t, rr))

	rr = do(t, h, http.MethodPut, "/api/v1/transactions/"+created.ID, `{"amount":"25.75","description":" dinner "}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	updated := decode[transactionBody](t, rr)
	assert.InDelta(t, 25.75, updated.Amount, 0.001)
	assert.Equal(t, "dinner", updated.Description)
	assert.Equal(t, "Food", updated.Category)

	stored, err := state.Transaction(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2575), stored.Amount)

	rr = do(t, h, http.MethodPut, "/api/v1/transactions/"+created.ID, `{"category":"Rent"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, "/api/v1/transactions/missing", `{"amount":1}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/v1/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/v1/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/v1/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestTransactions_ListFollowsFilter(t *testing.T) {
	h, _ := newRouter(t)

	createTransaction(t, h, `{"date":"2024-04-01","amount":100,"category":"Salary","type":"income"}`)
	createTransaction(t, h, `{"date":"2024-04-02","amount":30,"category":"Food"}`)
	createTransaction(t, h, `{"date":"2024-04-03","amount":20,"category":"Food"}`)

	rr := do(t, h, http.MethodGet, "/api/v1/transactions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]transactionBody](t, rr), 3)

	rr = do(t, h, http.MethodGet, "/api/v1/transactions?category=Food", "")
	assert.Len(t, decode[[]transactionBody](t, rr), 2)

	rr = do(t, h, http.MethodPut, "/api/v1/filter", `{"category":"Salary"}`)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/v1/filter", "")
	assert.JSONEq(t, `{"category":"Salary"}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/v1/transactions", "")
	list := decode[[]transactionBody](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, "Salary", list[0].Category)

	rr = do(t, h, http.MethodGet, "/api/v1/transactions?category=", "")
	assert.Len(t, decode[[]transactionBody](t, rr), 3)
}

func TestSummary(t *testing.T) {
	h, _ := newRouter(t)

	createTransaction(t, h, `{"date":"2024-04-01","amount":1500,"category":"Salary","type":"income"}`)
	createTransaction(t, h, `{"date":"2024-04-02","amount":"265.50","category":"Food"}`)
	createTransaction(t, h, `{"date":"2024-04-03","amount":20,"category":"Transport"}`)

	rr := do(t, h, http.MethodGet, "/api/v1/summary", "")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode[summaryBody](t, rr)
	assert.Equal(t, 3, got.Count)
	assert.InDelta(t, 1500, got.TotalIncome, 0.001)
	assert.InDelta(t, 285.5, got.TotalExpense, 0.001)
	assert.InDelta(t, 1214.5, got.Balance, 0.001)
	assert.Equal(t, "1,500.00", got.Formatted.TotalIncome)
	assert.Equal(t, "285.50", got.Formatted.TotalExpense)
	assert.Equal(t, "1,214.50", got.Formatted.Balance)

	rr = do(t, h, http.MethodGet, "/api/v1/summary?category=Food", "")
	got = decode[summaryBody](t, rr)
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, 1, got.Count)
	assert.InDelta(t, 0, got.TotalIncome, 0.001)
	assert.InDelta(t, -265.5, got.Balance, 0.001)
	assert.Equal(t, "-265.50", got.Formatted.Balance)
}

func TestCategories(t *testing.T) {
	h, state := newRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, category.DefaultCategories, decode[[]string](t, rr))

	rr = do(t, h, http.MethodPost, "/api/v1/categories", `{"name":" Rent "}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"name":"Rent","added":true}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/v1/categories", `{"name":"Rent"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"name":"Rent","added":false}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/v1/categories", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	createTransaction(t, h, `{"date":"2024-04-01","amount":900,"category":"Rent"}`)

	rr = do(t, h, http.MethodDelete, "/api/v1/categories/Rent", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotContains(t, state.Categories(), "Rent")

	// Orphaned transactions stay reachable through the filter.
	rr = do(t, h, http.MethodGet, "/api/v1/transactions?category=Rent", "")
	assert.Len(t, decode[[]transactionBody](t, rr), 1)

	rr = do(t, h, http.MethodDelete, "/api/v1/categories/Nope", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestCategories_DeleteEscapedLabels(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{name: "percent sign", label: "50% off"},
		{name: "literal escape sequence", label: "a%20b"},
		{name: "space", label: "Eating out"},
		{name: "slash", label: "Rent/Utilities"},
		{name: "non-ascii", label: "食費"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, state := newRouter(t)

			require.True(t, state.AddCategory(context.Background(), tt.label))

			rr := do(t, h, http.MethodDelete, "/api/v1/categories/"+url.PathEscape(tt.label), "")
			assert.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
			assert.NotContains(t, state.Categories(), tt.label)
			assert.Equal(t, category.DefaultCategories, state.Categories())
		})
	}
}

func TestMatching_Suggest(t *testing.T) {
	h, _ := newRouter(t)

	createTransaction(t, h, `{"date":"2024-04-01","amount":4,"category":"Food","description":"Coffee shop"}`)

	rr := do(t, h, http.MethodGet, "/api/v1/matching/suggest?description=coffee", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"description":"coffee","category":"Food"}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/v1/matching/suggest?description=train", "")
	assert.JSONEq(t, `{"description":"train","category":""}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/v1/matching/suggest", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBackup_DownloadAndRestore(t *testing.T) {
	src, _ := newRouter(t)

	createTransaction(t, src, `{"date":"2024-04-01","amount":1500,"category":"Salary","type":"income"}`)
	createTransaction(t, src, `{"date":"2024-04-02","amount":12.3,"category":"Food"}`)
	do(t, src, http.MethodPost, "/api/v1/categories", `{"name":"Rent"}`)

	rr := do(t, src, http.MethodGet, "/api/v1/backup", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment; filename=\"cashflow-")

	dst, state := newRouter(t)

	restore := func(payload []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer

		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("file", "backup.json")
		require.NoError(t, err)
		_, err = fw.Write(payload)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/backup", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		res := httptest.NewRecorder()
		dst.ServeHTTP(res, req)

		return res
	}

	backup := rr.Body.Bytes()

	res := restore(backup)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.JSONEq(t, `{"transactions":2,"categories":1}`, res.Body.String())
	assert.Len(t, state.AllTransactions(), 2)
	assert.Contains(t, state.Categories(), "Rent")

	res = restore(backup)
	assert.JSONEq(t, `{"transactions":0,"categories":0}`, res.Body.String())

	res = restore([]byte("not json"))
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestBackup_RestoreRequiresFile(t *testing.T) {
	h, _ := newRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/backup", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCORS(t *testing.T) {
	h, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/transactions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
