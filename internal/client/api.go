package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"moneymap/internal/models"
	"moneymap/internal/services"
)

// API is an HTTP client for the MoneyMap REST surface.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI creates an API client for the server at baseURL.
func NewAPI(baseURL string) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// TransactionInput is the payload for creating or updating a transaction.
type TransactionInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date,omitempty"`
}

// BudgetInput is the payload for the budget upsert.
type BudgetInput struct {
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListTransactions fetches transactions under the given filters. A category
// filter routes through the /filter endpoint.
func (a *API) ListTransactions(ctx context.Context, f Filters) ([]models.Transaction, error) {
	path := "/api/transactions"
	if f.Category != "" {
		path = "/api/transactions/filter"
	}

	query := url.Values{}
	if f.StartDate != "" {
		query.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		query.Set("endDate", f.EndDate)
	}
	if f.Category != "" {
		query.Set("category", f.Category)
	}

	var transactions []models.Transaction
	if err := a.do(ctx, http.MethodGet, path, query, nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// CreateTransaction records a new transaction.
func (a *API) CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := a.do(ctx, http.MethodPost, "/api/transactions", nil, in, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateTransaction replaces the mutable fields of a transaction.
func (a *API) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := a.do(ctx, http.MethodPut, "/api/transactions/"+id, nil, in, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction.
func (a *API) DeleteTransaction(ctx context.Context, id string) error {
	var resp messageResponse
	return a.do(ctx, http.MethodDelete, "/api/transactions/"+id, nil, nil, &resp)
}

// ExportCSV downloads the filtered transactions as CSV text.
func (a *API) ExportCSV(ctx context.Context, f Filters) (string, error) {
	query := url.Values{}
	if f.StartDate != "" {
		query.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		query.Set("endDate", f.EndDate)
	}

	req, err := a.newRequest(ctx, http.MethodGet, "/api/transactions/export/csv", query, nil)
	if err != nil {
		return "", err
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp.StatusCode, body)
	}
	return string(body), nil
}

// ListCategories fetches the fixed category set.
func (a *API) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := a.do(ctx, http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListBudgets fetches budgets, optionally scoped to a date range.
func (a *API) ListBudgets(ctx context.Context, f Filters) ([]models.Budget, error) {
	query := url.Values{}
	if f.StartDate != "" {
		query.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		query.Set("endDate", f.EndDate)
	}

	var budgets []models.Budget
	if err := a.do(ctx, http.MethodGet, "/api/budgets", query, nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// UpsertBudget creates or replaces a budget.
func (a *API) UpsertBudget(ctx context.Context, in BudgetInput) (*models.Budget, error) {
	var budget models.Budget
	if err := a.do(ctx, http.MethodPost, "/api/budgets", nil, in, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// DeleteBudget removes a budget.
func (a *API) DeleteBudget(ctx context.Context, id string) error {
	var resp messageResponse
	return a.do(ctx, http.MethodDelete, "/api/budgets/"+id, nil, nil, &resp)
}

// GetSummary fetches the current-month dashboard summary.
func (a *API) GetSummary(ctx context.Context) (*services.Summary, error) {
	var summary services.Summary
	if err := a.do(ctx, http.MethodGet, "/api/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetMonthlyTrend fetches the trailing six-month series.
func (a *API) GetMonthlyTrend(ctx context.Context) ([]services.MonthlySummary, error) {
	var series []services.MonthlySummary
	if err := a.do(ctx, http.MethodGet, "/api/summary/monthly", nil, nil, &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (a *API) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (a *API) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := a.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, payload)
	}
	if out != nil {
		return json.Unmarshal(payload, out)
	}
	return nil
}

func apiError(status int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return fmt.Errorf("api: %s (status %d)", resp.Error, status)
	}
	return fmt.Errorf("api: unexpected status %d", status)
}
