package integration

import (
	"net/http"
	"testing"
)

func TestGoalFlow_SavingsProgressAndNotification(t *testing.T) {
	app := setupApp(t)

	// Step 1: create a savings goal
	rec := app.request("POST", "/api/v1/goals",
		`{"type":"savings","name":"Trip to Lisbon","target":"500","current":"0"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	goalID := parseJSON(t, rec)["goal"].(map[string]interface{})["id"].(string)

	// Step 2: record progress
	rec = app.request("POST", "/api/v1/goals/"+goalID+"/progress", `{"amount":"300"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	goal := parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["current"] != "300" {
		t.Errorf("expected current 300, got %v", goal["current"])
	}

	// Step 3: crossing the target raises a notification
	rec = app.request("POST", "/api/v1/goals/"+goalID+"/progress", `{"amount":"250"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/notifications", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	notifications := parseJSON(t, rec)["notifications"].([]interface{})
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].(map[string]interface{})["severity"] != "success" {
		t.Errorf("expected success severity, got %v", notifications[0])
	}
}

func TestGoalFlow_BudgetProgressTracksSpending(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/goals",
		`{"type":"budget","name":"Food cap","target":"600","category":"Alimentação"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	goalID := parseJSON(t, rec)["goal"].(map[string]interface{})["id"].(string)

	// Spend in the budget's category this month
	rec = app.request("POST", "/api/v1/transactions",
		`{"type":"expense","description":"Groceries","category":"Alimentação","amount":"150"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/transactions",
		`{"type":"expense","description":"Restaurant","category":"Alimentação","amount":"90"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	// Spending in another category must not count
	rec = app.request("POST", "/api/v1/transactions",
		`{"type":"expense","description":"Bus","category":"Transporte","amount":"50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/goals/"+goalID+"/progress", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	progress := parseJSON(t, rec)["progress"].(map[string]interface{})
	if progress["spent"] != "240" {
		t.Errorf("expected spent 240, got %v", progress["spent"])
	}
	if progress["remaining"] != "360" {
		t.Errorf("expected remaining 360, got %v", progress["remaining"])
	}
	if progress["percentage"] != "40" {
		t.Errorf("expected percentage 40, got %v", progress["percentage"])
	}
}
