package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/pagination"
	"financehub/internal/services"
	"financehub/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn func(input services.CreateTransactionInput) (*models.Transaction, error)
	updateTransactionFn func(id string, input services.UpdateTransactionInput) (*models.Transaction, error)
	deleteTransactionFn func(id string) error
	getTransactionFn    func(id string) (*models.Transaction, error)
	listTransactionsFn  func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

func (m *mockTransactionService) CreateTransaction(input services.CreateTransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(id string, input services.UpdateTransactionInput) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

func (m *mockTransactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	if m.getTransactionFn != nil {
		return m.getTransactionFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) ListTransactions(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) AllTransactions(services.TransactionFilter) ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransactionByID)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(input services.CreateTransactionInput) (*models.Transaction, error) {
				return &models.Transaction{
					Base:        models.Base{ID: "t1"},
					Type:        input.Type,
					Description: input.Description,
					Category:    input.Category,
					Amount:      input.Amount,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","description":"Groceries","category":"Alimentação","amount":"89.90","payment_method":"debit"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["description"] != "Groceries" {
			t.Errorf("expected description Groceries, got %v", tx["description"])
		}
	})

	t.Run("returns 400 on missing description", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","category":"Outros","amount":"10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unsupported type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"transfer","description":"x","category":"Outros","amount":"10"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","description":"x","category":"Outros","amount":"10","date":"31/12/2024"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("propagates service errors", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(services.CreateTransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrCardNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","description":"x","category":"Outros","amount":"10","payment_method":"credit","card_id":"missing"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CARD_NOT_FOUND")
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var captured services.TransactionFilter
		txSvc := &mockTransactionService{
			listTransactionsFn: func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				captured = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions?type=expense&category=Transporte&search=uber&start_date=2024-01-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Type == nil || *captured.Type != models.TransactionTypeExpense {
			t.Error("expected type filter to reach the service")
		}
		if captured.Category == nil || *captured.Category != "Transporte" {
			t.Error("expected category filter to reach the service")
		}
		if captured.Search != "uber" {
			t.Errorf("expected search filter, got %q", captured.Search)
		}
		if captured.StartDate == nil {
			t.Error("expected start_date filter to be parsed")
		}
	})

	t.Run("returns 400 on invalid type filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?type=transfer", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid date filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?start_date=notadate", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getTransactionFn: func(string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			updateTransactionFn: func(id string, input services.UpdateTransactionInput) (*models.Transaction, error) {
				tx := &models.Transaction{Base: models.Base{ID: id}}
				if input.Description != nil {
					tx.Description = *input.Description
				}
				return tx, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "PUT", "/transactions/t1", `{"description":"Renamed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["description"] != "Renamed" {
			t.Errorf("expected updated description, got %v", tx["description"])
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "DELETE", "/transactions/t1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
