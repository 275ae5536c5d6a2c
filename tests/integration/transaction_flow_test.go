package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestTransactionFlow_CreateListUpdateDelete(t *testing.T) {
	app := setupApp(t)

	// Create two transactions on different dates
	firstID := app.createTransaction(t, "Lunch", "Food", 200, "2024-06-01")
	secondID := app.createTransaction(t, "Bus ticket", "Transport", 30, "2024-06-15")

	// List: newest first
	rec := app.request("GET", "/api/transactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	list := parseJSONArray(t, rec)
	if len(list) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(list))
	}
	newest := list[0].(map[string]interface{})
	if newest["id"] != secondID {
		t.Errorf("expected newest transaction first, got %v", newest["id"])
	}
	if newest["amount"].(float64) != 30 {
		t.Errorf("expected bare numeric amount, got %v", newest["amount"])
	}

	// Update the first transaction
	rec = app.request("PUT", "/api/transactions/"+firstID,
		`{"amount":250,"description":"Team lunch","category":"Food","date":"2024-06-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)
	if updated["description"] != "Team lunch" || updated["amount"].(float64) != 250 {
		t.Errorf("unexpected updated transaction: %v", updated)
	}

	// Delete the second transaction
	rec = app.request("DELETE", "/api/transactions/"+secondID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["message"] != "Transaction deleted successfully" {
		t.Errorf("unexpected delete response: %s", rec.Body.String())
	}

	rec = app.request("GET", "/api/transactions", "")
	if got := len(parseJSONArray(t, rec)); got != 1 {
		t.Errorf("expected 1 transaction after delete, got %d", got)
	}
}

func TestTransactionFlow_Validation(t *testing.T) {
	app := setupApp(t)

	t.Run("missing fields", func(t *testing.T) {
		rec := app.request("POST", "/api/transactions", `{"amount":200}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if parseJSON(t, rec)["error"] != "Missing required fields" {
			t.Errorf("unexpected error: %s", rec.Body.String())
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		rec := app.request("POST", "/api/transactions",
			`{"amount":200,"description":"Lunch","category":"Lottery"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		rec := app.request("POST", "/api/transactions",
			`{"amount":-5,"description":"Lunch","category":"Food"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["error"] != "Amount must be non-negative" {
			t.Errorf("unexpected error: %s", rec.Body.String())
		}
	})

	t.Run("update of unknown id", func(t *testing.T) {
		rec := app.request("PUT", "/api/transactions/00000000-0000-0000-0000-000000000000",
			`{"amount":10,"description":"Lunch","category":"Food","date":"2024-06-01"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if parseJSON(t, rec)["error"] != "Transaction not found" {
			t.Errorf("unexpected error: %s", rec.Body.String())
		}
	})
}

func TestTransactionFlow_Filtering(t *testing.T) {
	app := setupApp(t)

	app.createTransaction(t, "Lunch", "Food", 200, "2024-06-01")
	app.createTransaction(t, "Dinner", "Food", 300, "2024-07-10")
	app.createTransaction(t, "Bus", "Transport", 30, "2024-06-15")

	// Date range only
	rec := app.request("GET", "/api/transactions?startDate=2024-06-01&endDate=2024-06-30", "")
	if got := len(parseJSONArray(t, rec)); got != 2 {
		t.Errorf("expected 2 transactions in June, got %d", got)
	}

	// Category and date range combined
	rec = app.request("GET", "/api/transactions/filter?category=Food&startDate=2024-06-01&endDate=2024-06-30", "")
	list := parseJSONArray(t, rec)
	if len(list) != 1 {
		t.Fatalf("expected 1 Food transaction in June, got %d", len(list))
	}
	if list[0].(map[string]interface{})["description"] != "Lunch" {
		t.Errorf("unexpected match: %v", list[0])
	}

	// Malformed date
	rec = app.request("GET", "/api/transactions?startDate=not-a-date", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed date, got %d", rec.Code)
	}
}

func TestTransactionFlow_ExportCSV(t *testing.T) {
	app := setupApp(t)

	app.createTransaction(t, `Pizza "Night"`, "Food", 450, "2024-03-05")

	rec := app.request("GET", "/api/transactions/export/csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="transactions.csv"` {
		t.Errorf("unexpected disposition: %q", got)
	}

	want := "Date,Description,Category,Amount\n" + `2024-03-05,"Pizza ""Night""","Food",450`
	if rec.Body.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, rec.Body.String())
	}
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["status"] != "OK" {
		t.Errorf("unexpected health body: %v", result)
	}
	if _, ok := result["timestamp"].(string); !ok {
		t.Errorf("expected timestamp string, got %v", result["timestamp"])
	}

	rec = app.request("GET", "/api/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if parseJSON(t, rec)["error"] != "Route not found" {
		t.Errorf("unexpected 404 body: %s", rec.Body.String())
	}
}

func TestTransactionFlow_LargeDescriptionRoundTrip(t *testing.T) {
	app := setupApp(t)

	description := strings.Repeat("a", 500)
	id := app.createTransaction(t, description, "Others", 1, "2024-06-01")

	rec := app.request("GET", "/api/transactions", "")
	list := parseJSONArray(t, rec)
	if len(list) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(list))
	}
	tx := list[0].(map[string]interface{})
	if tx["id"] != id || tx["description"] != description {
		t.Error("stored transaction did not round-trip")
	}
	if fmt.Sprintf("%v", tx["category"]) != "Others" {
		t.Errorf("unexpected category: %v", tx["category"])
	}
}
