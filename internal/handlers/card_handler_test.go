package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/services"
)

// --- mock card service ---

type mockCardService struct {
	createCardFn func(name string, limit decimal.Decimal, brand, color string, closingDay, dueDay int) (*models.Card, error)
	getCardFn    func(id string) (*models.Card, error)
	listCardsFn  func() ([]models.Card, error)
	updateCardFn func(id string, input services.UpdateCardInput) (*models.Card, error)
	deleteCardFn func(id string) error
}

func (m *mockCardService) CreateCard(name string, limit decimal.Decimal, brand, color string, closingDay, dueDay int) (*models.Card, error) {
	if m.createCardFn != nil {
		return m.createCardFn(name, limit, brand, color, closingDay, dueDay)
	}
	return &models.Card{}, nil
}

func (m *mockCardService) GetCardByID(id string) (*models.Card, error) {
	if m.getCardFn != nil {
		return m.getCardFn(id)
	}
	return &models.Card{}, nil
}

func (m *mockCardService) ListCards() ([]models.Card, error) {
	if m.listCardsFn != nil {
		return m.listCardsFn()
	}
	return []models.Card{}, nil
}

func (m *mockCardService) UpdateCard(id string, input services.UpdateCardInput) (*models.Card, error) {
	if m.updateCardFn != nil {
		return m.updateCardFn(id, input)
	}
	return &models.Card{}, nil
}

func (m *mockCardService) DeleteCard(id string) error {
	if m.deleteCardFn != nil {
		return m.deleteCardFn(id)
	}
	return nil
}

func (m *mockCardService) ApplyTransactionEffect(*gorm.DB, string, decimal.Decimal, services.EffectDirection) error {
	return nil
}

var _ services.CardServicer = (*mockCardService)(nil)

func setupCardRouter(handler *CardHandler) *gin.Engine {
	r := gin.New()
	r.POST("/cards", handler.CreateCard)
	r.GET("/cards", handler.GetCards)
	r.GET("/cards/:id", handler.GetCardByID)
	r.PUT("/cards/:id", handler.UpdateCard)
	r.DELETE("/cards/:id", handler.DeleteCard)
	return r
}

func TestCardHandler_CreateCard(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		cardSvc := &mockCardService{
			createCardFn: func(name string, limit decimal.Decimal, brand, color string, closingDay, dueDay int) (*models.Card, error) {
				return &models.Card{
					Base:           models.Base{ID: "c1"},
					Name:           name,
					Limit:          limit,
					AvailableLimit: limit,
				}, nil
			},
		}
		r := setupCardRouter(NewCardHandler(cardSvc))

		rec := doRequest(r, "POST", "/cards",
			`{"name":"Nubank","limit":"2500","brand":"mastercard","color":"#820ad1","closing_day":5,"due_day":12}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		card := result["card"].(map[string]interface{})
		if card["name"] != "Nubank" {
			t.Errorf("expected card name Nubank, got %v", card["name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupCardRouter(NewCardHandler(&mockCardService{}))

		rec := doRequest(r, "POST", "/cards", `{"limit":"2500"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad color", func(t *testing.T) {
		r := setupCardRouter(NewCardHandler(&mockCardService{}))

		rec := doRequest(r, "POST", "/cards", `{"name":"Inter","limit":"1000","color":"orange"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on out-of-range closing day", func(t *testing.T) {
		r := setupCardRouter(NewCardHandler(&mockCardService{}))

		rec := doRequest(r, "POST", "/cards", `{"name":"Inter","limit":"1000","closing_day":32}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCardHandler_GetCardByID(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		cardSvc := &mockCardService{
			getCardFn: func(string) (*models.Card, error) {
				return nil, apperrors.ErrCardNotFound
			},
		}
		r := setupCardRouter(NewCardHandler(cardSvc))

		rec := doRequest(r, "GET", "/cards/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CARD_NOT_FOUND")
	})
}

func TestCardHandler_UpdateCard(t *testing.T) {
	t.Run("passes partial input through", func(t *testing.T) {
		var captured services.UpdateCardInput
		cardSvc := &mockCardService{
			updateCardFn: func(id string, input services.UpdateCardInput) (*models.Card, error) {
				captured = input
				return &models.Card{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupCardRouter(NewCardHandler(cardSvc))

		rec := doRequest(r, "PUT", "/cards/c1", `{"limit":"5000"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Limit == nil || !captured.Limit.Equal(decimal.RequireFromString("5000")) {
			t.Error("expected limit to reach the service")
		}
		if captured.Name != nil {
			t.Error("expected omitted fields to stay nil")
		}
	})
}

func TestCardHandler_DeleteCard(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupCardRouter(NewCardHandler(&mockCardService{}))

		rec := doRequest(r, "DELETE", "/cards/c1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
