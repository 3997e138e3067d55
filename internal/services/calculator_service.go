package services

import (
	"github.com/shopspring/decimal"

	apperrors "financehub/internal/errors"
)

// exchangeRates maps currency codes to their value relative to EUR.
// Static approximations; a production deployment would pull these from an API.
var exchangeRates = map[string]decimal.Decimal{
	"EUR": decimal.NewFromInt(1),
	"USD": decimal.NewFromFloat(1.08),
	"BRL": decimal.NewFromFloat(5.45),
	"GBP": decimal.NewFromFloat(0.86),
}

// calculatorService implements the planning tools. Stateless and pure.
type calculatorService struct{}

// NewCalculatorService creates a new CalculatorServicer.
func NewCalculatorService() CalculatorServicer {
	return &calculatorService{}
}

// CompoundInterest projects a principal with a monthly rate (percent) and an
// optional monthly contribution added after each compounding step.
func (s *calculatorService) CompoundInterest(principal, monthlyRate decimal.Decimal, months int, monthlyContribution decimal.Decimal) CompoundInterestResult {
	factor := decimal.NewFromInt(1).Add(monthlyRate.Div(hundred))

	amount := principal
	for i := 0; i < months; i++ {
		amount = amount.Mul(factor).Add(monthlyContribution)
	}

	contributed := principal.Add(monthlyContribution.Mul(decimal.NewFromInt(int64(months))))
	return CompoundInterestResult{
		FinalAmount:      amount,
		TotalContributed: contributed,
		TotalInterest:    amount.Sub(contributed),
	}
}

// SimulateInstallment splits a total into installments. With interest it uses
// the Price amortization formula on the monthly rate (percent).
func (s *calculatorService) SimulateInstallment(total decimal.Decimal, installments int, monthlyRate decimal.Decimal) (*InstallmentResult, error) {
	if installments < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "installments must be at least 1")
	}
	if !total.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total must be greater than zero")
	}

	n := decimal.NewFromInt(int64(installments))
	if monthlyRate.IsZero() {
		value := total.Div(n)
		return &InstallmentResult{
			InstallmentValue: value,
			TotalAmount:      total,
			TotalInterest:    decimal.Zero,
		}, nil
	}

	rate := monthlyRate.Div(hundred)
	compounded := decimal.NewFromInt(1).Add(rate).Pow(n)
	value := total.Mul(rate.Mul(compounded)).Div(compounded.Sub(decimal.NewFromInt(1)))
	finalTotal := value.Mul(n)

	return &InstallmentResult{
		InstallmentValue: value,
		TotalAmount:      finalTotal,
		TotalInterest:    finalTotal.Sub(total),
	}, nil
}

// ConvertCurrency converts via EUR as the base currency.
func (s *calculatorService) ConvertCurrency(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := exchangeRates[from]
	if !ok {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown currency: "+from)
	}
	toRate, ok := exchangeRates[to]
	if !ok {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown currency: "+to)
	}
	return amount.Div(fromRate).Mul(toRate), nil
}
