package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTransactionFlow(t *testing.T) {
	t.Run("create list update delete", func(t *testing.T) {
		app := setupApp(t)
		token, _ := app.registerUser(t, "alice", "password123")

		rec := app.request("POST", "/api/v1/transactions",
			`{"type":"expense","description":"Lunch","amount":12.5,"category":"Dining","date":"2024-03-01"}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
		}
		created := parseJSON(t, rec)
		txID := created["id"].(float64)
		if created["date"] != "2024-03-01" {
			t.Errorf("expected date 2024-03-01, got %v", created["date"])
		}

		list := parseJSONArray(t, app.request("GET", "/api/v1/transactions", "", token))
		if len(list) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(list))
		}

		rec = app.request("PUT", fmt.Sprintf("/api/v1/transactions/%.0f", txID),
			`{"type":"expense","description":"Team lunch","amount":40,"category":"Dining","date":"2024-03-01"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["amount"].(float64) != 40 {
			t.Error("expected updated amount 40")
		}

		rec = app.request("DELETE", fmt.Sprintf("/api/v1/transactions/%.0f", txID), "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
		}

		list = parseJSONArray(t, app.request("GET", "/api/v1/transactions", "", token))
		if len(list) != 0 {
			t.Errorf("expected empty list after delete, got %d", len(list))
		}
	})

	t.Run("search and paging", func(t *testing.T) {
		app := setupApp(t)
		token, _ := app.registerUser(t, "alice", "password123")

		descriptions := []string{"Coffee beans", "Coffee to go", "Groceries"}
		for i, desc := range descriptions {
			rec := app.request("POST", "/api/v1/transactions",
				fmt.Sprintf(`{"type":"expense","description":%q,"amount":%d,"category":"Shopping","date":"2024-03-0%d"}`, desc, i+1, i+1),
				token)
			if rec.Code != http.StatusCreated {
				t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
			}
		}

		matches := parseJSONArray(t, app.request("GET", "/api/v1/transactions?query=Coffee", "", token))
		if len(matches) != 2 {
			t.Errorf("expected 2 matches for Coffee, got %d", len(matches))
		}

		page := parseJSONArray(t, app.request("GET", "/api/v1/transactions?skip=1&limit=1", "", token))
		if len(page) != 1 {
			t.Errorf("expected 1 transaction on page, got %d", len(page))
		}
	})

	t.Run("users cannot touch each other's transactions", func(t *testing.T) {
		app := setupApp(t)
		aliceToken, _ := app.registerUser(t, "alice", "password123")
		bobToken, _ := app.registerUser(t, "bob", "password123")

		rec := app.request("POST", "/api/v1/transactions",
			`{"type":"expense","description":"Lunch","amount":12.5,"category":"Dining","date":"2024-03-01"}`, aliceToken)
		txID := parseJSON(t, rec)["id"].(float64)

		rec = app.request("DELETE", fmt.Sprintf("/api/v1/transactions/%.0f", txID), "", bobToken)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}

		rec = app.request("PUT", fmt.Sprintf("/api/v1/transactions/%.0f", txID),
			`{"type":"expense","description":"Hijack","amount":1,"category":"Dining","date":"2024-03-01"}`, bobToken)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("free text category accepted", func(t *testing.T) {
		app := setupApp(t)
		token, _ := app.registerUser(t, "alice", "password123")

		rec := app.request("POST", "/api/v1/transactions",
			`{"type":"expense","description":"Mystery","amount":9.99,"category":"No Such Category","date":"2024-03-01"}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
