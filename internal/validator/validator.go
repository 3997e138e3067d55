// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validCurrencies contains the currencies the exchange-rate table knows about.
var validCurrencies = map[string]bool{
	"EUR": true, "USD": true, "BRL": true, "GBP": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("goal_type", validateGoalType)
		_ = v.RegisterValidation("severity", validateSeverity)
		_ = v.RegisterValidation("day_of_month", validateDayOfMonth)
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cash", "debit", "credit", "pix", "transfer":
		return true
	}
	return false
}

func validateGoalType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "savings", "budget":
		return true
	}
	return false
}

func validateSeverity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "info", "success", "warning", "error":
		return true
	}
	return false
}

func validateDayOfMonth(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 1 && d <= 31
}
