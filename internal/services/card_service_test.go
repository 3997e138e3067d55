package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"financehub/internal/models"
	"financehub/internal/testutil"
)

func TestCreateCard(t *testing.T) {
	t.Run("starts_with_full_limit_available", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cardSvc := NewCardService(db, NewNotificationService(db))

		card, err := cardSvc.CreateCard("Nubank", d("1500"), "mastercard", "#820ad1", 5, 15)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, decimal.Zero, card.LimitUsed)
		testutil.AssertDecimalEqual(t, d("1500"), card.AvailableLimit)
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cardSvc := NewCardService(db, NewNotificationService(db))

		_, err := cardSvc.CreateCard("", d("1500"), "", "", 5, 15)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_non_positive_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cardSvc := NewCardService(db, NewNotificationService(db))

		_, err := cardSvc.CreateCard("Nubank", decimal.Zero, "", "", 5, 15)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_invalid_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cardSvc := NewCardService(db, NewNotificationService(db))

		_, err := cardSvc.CreateCard("Nubank", d("1500"), "", "", 0, 32)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateCard(t *testing.T) {
	t.Run("limit_change_recomputes_available", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc, cardSvc := newLedgerServices(db)
		card := testutil.CreateTestCard(t, db, d("1000"))

		_, err := txSvc.CreateTransaction(CreateTransactionInput{
			Type:          models.TransactionTypeExpense,
			Description:   "New phone",
			Category:      "Compras",
			Amount:        d("400"),
			PaymentMethod: models.PaymentMethodCredit,
			CardID:        &card.ID,
		})
		testutil.AssertNoError(t, err)

		newLimit := d("2000")
		updated, err := cardSvc.UpdateCard(card.ID, UpdateCardInput{Limit: &newLimit})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, d("400"), updated.LimitUsed)
		testutil.AssertDecimalEqual(t, d("1600"), updated.AvailableLimit)
	})

	t.Run("unknown_card", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cardSvc := NewCardService(db, NewNotificationService(db))

		name := "Renamed"
		_, err := cardSvc.UpdateCard("missing-id", UpdateCardInput{Name: &name})
		testutil.AssertAppError(t, err, "CARD_NOT_FOUND")
	})
}

func TestDeleteCard(t *testing.T) {
	t.Run("unknown_card_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cardSvc := NewCardService(db, NewNotificationService(db))

		testutil.AssertNoError(t, cardSvc.DeleteCard("missing-id"))
	})
}

func TestCardLimitAlert(t *testing.T) {
	t.Run("warns_at_eighty_percent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifSvc := NewNotificationService(db)
		cardSvc := NewCardService(db, notifSvc)
		txSvc := NewTransactionService(db, cardSvc)

		card, err := cardSvc.CreateCard("Inter", d("1000"), "visa", "#ff7a00", 5, 15)
		testutil.AssertNoError(t, err)

		_, err = txSvc.CreateTransaction(CreateTransactionInput{
			Type:          models.TransactionTypeExpense,
			Description:   "Big purchase",
			Category:      "Compras",
			Amount:        d("850"),
			PaymentMethod: models.PaymentMethodCredit,
			CardID:        &card.ID,
		})
		testutil.AssertNoError(t, err)

		notifications, err := notifSvc.ListNotifications(false)
		testutil.AssertNoError(t, err)
		if len(notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(notifications))
		}
		if notifications[0].Severity != models.SeverityWarning {
			t.Errorf("expected warning severity, got %s", notifications[0].Severity)
		}
		if !strings.Contains(notifications[0].Message, "Inter") {
			t.Errorf("expected message to name the card, got %q", notifications[0].Message)
		}
	})

	t.Run("alerts_once_per_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifSvc := NewNotificationService(db)
		cardSvc := NewCardService(db, notifSvc)
		txSvc := NewTransactionService(db, cardSvc)

		card, err := cardSvc.CreateCard("Inter", d("1000"), "visa", "#ff7a00", 5, 15)
		testutil.AssertNoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = txSvc.CreateTransaction(CreateTransactionInput{
				Type:          models.TransactionTypeExpense,
				Description:   "Purchase",
				Category:      "Compras",
				Amount:        d("300"),
				PaymentMethod: models.PaymentMethodCredit,
				CardID:        &card.ID,
			})
			testutil.AssertNoError(t, err)
		}

		notifications, err := notifSvc.ListNotifications(false)
		testutil.AssertNoError(t, err)
		if len(notifications) != 1 {
			t.Fatalf("expected a single alert, got %d", len(notifications))
		}
	})

	t.Run("quiet_below_threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifSvc := NewNotificationService(db)
		cardSvc := NewCardService(db, notifSvc)
		txSvc := NewTransactionService(db, cardSvc)

		card, err := cardSvc.CreateCard("Inter", d("1000"), "visa", "#ff7a00", 5, 15)
		testutil.AssertNoError(t, err)

		_, err = txSvc.CreateTransaction(CreateTransactionInput{
			Type:          models.TransactionTypeExpense,
			Description:   "Small purchase",
			Category:      "Compras",
			Amount:        d("100"),
			PaymentMethod: models.PaymentMethodCredit,
			CardID:        &card.ID,
		})
		testutil.AssertNoError(t, err)

		notifications, err := notifSvc.ListNotifications(false)
		testutil.AssertNoError(t, err)
		if len(notifications) != 0 {
			t.Fatalf("expected no notifications, got %d", len(notifications))
		}
	})
}
