package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"moneymap/internal/models"
)

// fakeServer is a minimal in-memory rendition of the REST surface, enough to
// drive the store's command flows.
type fakeServer struct {
	transactions []models.Transaction
	budgets      []models.Budget

	// request log, method plus path
	calls []string
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, f.transactions)
		case http.MethodPost:
			var in TransactionInput
			json.NewDecoder(r.Body).Decode(&in)
			tx := models.Transaction{
				Base:        models.Base{ID: "tx-1"},
				Amount:      in.Amount,
				Description: in.Description,
				Category:    in.Category,
			}
			f.transactions = append(f.transactions, tx)
			writeJSON(w, http.StatusCreated, tx)
		}
	})

	mux.HandleFunc("/api/transactions/filter", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
		category := r.URL.Query().Get("category")
		matched := []models.Transaction{}
		for _, tx := range f.transactions {
			if category == "" || tx.Category == category {
				matched = append(matched, tx)
			}
		}
		writeJSON(w, http.StatusOK, matched)
	})

	mux.HandleFunc("/api/transactions/export/csv", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Date,Description,Category,Amount\n"))
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
			kept := f.transactions[:0]
			for _, tx := range f.transactions {
				if tx.ID != id {
					kept = append(kept, tx)
				}
			}
			f.transactions = kept
			writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
		}
	})

	mux.HandleFunc("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, f.budgets)
		case http.MethodPost:
			var in BudgetInput
			json.NewDecoder(r.Body).Decode(&in)
			b := models.Budget{
				Base:         models.Base{ID: "budget-1"},
				CategoryName: in.CategoryName,
				Amount:       in.Amount,
				Month:        in.Month,
				Year:         in.Year,
			}
			writeJSON(w, http.StatusOK, b)
		}
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newTestStore(t *testing.T, f *fakeServer) (*Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewStore(NewAPI(srv.URL)), srv
}

func TestStoreInit(t *testing.T) {
	f := &fakeServer{
		transactions: []models.Transaction{{Base: models.Base{ID: "tx-1"}, Description: "Lunch", Category: "Food"}},
		budgets:      []models.Budget{{Base: models.Base{ID: "budget-1"}, CategoryName: "Food", Month: 5, Year: 2024}},
	}
	store, _ := newTestStore(t, f)

	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	state := store.State()
	if len(state.Transactions) != 1 || state.Transactions[0].Description != "Lunch" {
		t.Errorf("unexpected transactions: %+v", state.Transactions)
	}
	if len(state.Budgets) != 1 || state.Budgets[0].CategoryName != "Food" {
		t.Errorf("unexpected budgets: %+v", state.Budgets)
	}
	if state.Loading {
		t.Error("expected loading cleared after init")
	}
}

func TestStoreAddTransaction(t *testing.T) {
	f := &fakeServer{}
	store, _ := newTestStore(t, f)

	err := store.AddTransaction(context.Background(), TransactionInput{
		Amount:      decimal.NewFromInt(200),
		Description: "Lunch",
		Category:    "Food",
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	state := store.State()
	if len(state.Transactions) != 1 {
		t.Fatalf("expected re-fetched collection with 1 transaction, got %d", len(state.Transactions))
	}
	if state.Err != "" || state.Loading {
		t.Errorf("expected clean state, got err=%q loading=%v", state.Err, state.Loading)
	}
}

func TestStoreDeleteTransaction(t *testing.T) {
	f := &fakeServer{
		transactions: []models.Transaction{{Base: models.Base{ID: "tx-1"}, Description: "Lunch", Category: "Food"}},
	}
	store, _ := newTestStore(t, f)

	if err := store.DeleteTransaction(context.Background(), "tx-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if got := len(store.State().Transactions); got != 0 {
		t.Errorf("expected empty collection after delete, got %d", got)
	}
}

func TestStoreUpsertBudgetPatchesLocally(t *testing.T) {
	f := &fakeServer{}
	store, _ := newTestStore(t, f)

	err := store.UpsertBudget(context.Background(), BudgetInput{
		CategoryName: "Food",
		Amount:       decimal.NewFromInt(500),
		Month:        5,
		Year:         2024,
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	state := store.State()
	if len(state.Budgets) != 1 {
		t.Fatalf("expected patched budget, got %d", len(state.Budgets))
	}
	if !state.Budgets[0].Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("unexpected amount: %s", state.Budgets[0].Amount)
	}

	// The patch is local, no budget list fetch should have happened.
	for _, call := range f.calls {
		if call == "GET /api/budgets" {
			t.Error("unexpected budget re-fetch after upsert")
		}
	}
}

func TestStoreSetFiltersRoutesThroughFilterEndpoint(t *testing.T) {
	f := &fakeServer{
		transactions: []models.Transaction{
			{Base: models.Base{ID: "tx-1"}, Description: "Lunch", Category: "Food"},
			{Base: models.Base{ID: "tx-2"}, Description: "Bus", Category: "Transport"},
		},
	}
	store, _ := newTestStore(t, f)

	err := store.SetFilters(context.Background(), Filters{Category: "Food"})
	if err != nil {
		t.Fatalf("set filters failed: %v", err)
	}

	state := store.State()
	if state.Filters.Category != "Food" {
		t.Errorf("expected filter recorded, got %+v", state.Filters)
	}
	if len(state.Transactions) != 1 || state.Transactions[0].Category != "Food" {
		t.Errorf("expected filtered collection, got %+v", state.Transactions)
	}

	filtered := false
	for _, call := range f.calls {
		if strings.HasPrefix(call, "GET /api/transactions/filter") && strings.Contains(call, "category=Food") {
			filtered = true
		}
	}
	if !filtered {
		t.Errorf("expected a filter endpoint call, got %v", f.calls)
	}
}

func TestStoreErrorRecordsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong!"})
	}))
	defer srv.Close()
	store := NewStore(NewAPI(srv.URL))

	err := store.FetchTransactions(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	state := store.State()
	if state.Err == "" || !strings.Contains(state.Err, "Something went wrong!") {
		t.Errorf("expected recorded error, got %q", state.Err)
	}
	if state.Loading {
		t.Error("expected loading cleared on error")
	}
}

func TestAPIExportCSV(t *testing.T) {
	f := &fakeServer{}
	_, srv := newTestStore(t, f)
	api := NewAPI(srv.URL)

	content, err := api.ExportCSV(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if content != "Date,Description,Category,Amount\n" {
		t.Errorf("unexpected content: %q", content)
	}
}
