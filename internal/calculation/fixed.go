package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// fixedCalculator produces the flat-interest schedule: interest is a
// constant fraction of the original principal for the life of the loan
// and the principal is paid down in equal installments. Products are not
// allocated in this model.
type fixedCalculator struct {
	logger Logger
}

func (c *fixedCalculator) calculate(loan *domain.Loan) (*domain.LoanAmortization, error) {
	earlyPayments := loan.EarlyPayments
	principal := loan.Amount
	term := loan.Term

	monthlyInterest := principal.Mul(monthlyInterestRate(loan.Rate)).Round(2)
	totalInterest := monthlyInterest.Mul(decimal.NewFromInt(int64(loan.Term)))
	totalDue := principal.Add(totalInterest)

	monthlyPrincipal := principal.DivRound(decimal.NewFromInt(int64(term)), 2)
	paymentAmount := monthlyInterest.Add(monthlyPrincipal)
	nominalPayment := paymentAmount
	c.logger.Debugf("fixed schedule: monthly interest %s, monthly principal %s", monthlyInterest, monthlyPrincipal)

	var paymentDate *time.Time
	if loan.FirstPaymentDate != nil {
		d := *loan.FirstPaymentDate
		paymentDate = &d
	}

	remainingPrincipal := principal
	payments := make([]domain.MonthlyPayment, 0, term)

	record := func(monthNumber int, additionalPayment decimal.Decimal) {
		tr := CalculateTax(loan.TaxDeductible, loan.LoanTaxType, loan.TaxPercentage, monthlyInterest, monthlyPrincipal)
		var date *time.Time
		if paymentDate != nil {
			d := *paymentDate
			date = &d
		}
		payments = append(payments, domain.MonthlyPayment{
			MonthNumber:             monthNumber,
			LoanBalanceAmount:       remainingPrincipal,
			DebtPaymentAmount:       tr.AdjustedPrincipalAmount,
			InterestPaymentAmount:   tr.AdjustedInterestAmount,
			PaymentAmount:           tr.PaymentAmount(),
			AdditionalPaymentAmount: additionalPayment,
			PaymentDate:             date,
			TaxAmount:               tr.TotalTaxAmount(),
			InterestTaxAmount:       tr.InterestTaxAmount,
			PrincipalTaxAmount:      tr.PrincipalTaxAmount,
		})
	}

	for i := 0; i < term; i++ {
		earlyPayment, hasEarly := earlyPayments[i]
		if hasEarly {
			additionalPayment := earlyPayment.Amount
			remainingPrincipal = remainingPrincipal.Sub(additionalPayment).Sub(paymentAmount)

			totalDue = totalDue.Sub(monthlyInterest.Add(monthlyPrincipal).Add(additionalPayment))
			if totalDue.IsNegative() {
				return nil, fmt.Errorf("%w: early payment of %s at month %d exceeds the remaining amount due", ErrInfeasible, additionalPayment, i)
			}

			switch earlyPayment.Strategy {
			case domain.DecreaseMonthlyPayment:
				if paymentAmount.Sign() <= 0 {
					continue
				}
				record(i, additionalPayment)
				monthlyPrincipal = remainingPrincipal.DivRound(decimal.NewFromInt(int64(term-i)), 2)
				paymentAmount = monthlyInterest.Add(monthlyPrincipal)
				c.logger.Infof("month %d: monthly principal lowered to %s", i, monthlyPrincipal)
			case domain.DecreaseTerm:
				term--
				paymentAmount = monthlyInterest.Add(monthlyPrincipal)
				if paymentAmount.Sign() <= 0 {
					continue
				}
				record(i, additionalPayment)
			}
		} else {
			totalDue = totalDue.Sub(monthlyInterest.Add(monthlyPrincipal))
			if totalDue.IsNegative() {
				// Rounding overshoot on the last scheduled month:
				// clamp the payment to what is actually still owed.
				paymentAmount = paymentAmount.Add(totalDue)
				monthlyPrincipal = paymentAmount.Sub(monthlyInterest)
			}

			if paymentAmount.Sign() <= 0 {
				continue
			}
			record(i, decimal.Zero)
		}

		remainingPrincipal = remainingPrincipal.Sub(monthlyPrincipal)
		if paymentDate != nil {
			next := nextMonthPaymentDate(*loan.FirstPaymentDate, *paymentDate)
			paymentDate = &next
		}
	}

	return &domain.LoanAmortization{
		MonthlyPaymentAmount: nominalPayment,
		MonthlyPayments:      payments,
		OverPaymentAmount:    totalInterest,
		EarlyPayments:        earlyPayments,
	}, nil
}
