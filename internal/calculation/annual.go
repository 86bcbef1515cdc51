package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// divisionScale is the intermediate precision of rate and proportion
// divisions; cent amounts are rounded half-up to 2 decimals.
const divisionScale = 15

var twelve = decimal.NewFromInt(12)

// annualCalculator produces the annuity-style schedule: a level monthly
// payment whose interest portion declines as the balance is paid down.
type annualCalculator struct {
	logger Logger
}

func (c *annualCalculator) calculate(loan *domain.Loan) (*domain.LoanAmortization, error) {
	earlyPayments := loan.EarlyPayments
	balance := loan.Amount
	allocator := newProductAllocator(loan.Products)
	term := loan.Term

	monthlyRate := monthlyInterestRate(loan.Rate)
	monthlyPayment := annuityPayment(balance, monthlyRate, term)
	nominalPayment := monthlyPayment
	c.logger.Debugf("annual schedule: monthly rate %s, level payment %s", monthlyRate, monthlyPayment)

	var paymentDate *time.Time
	if loan.FirstPaymentDate != nil {
		d := *loan.FirstPaymentDate
		paymentDate = &d
	}

	overPaidInterest := decimal.Zero
	payments := make([]domain.MonthlyPayment, 0, term)

	for i := 0; i < term; i++ {
		interestAmount := balance.Mul(monthlyRate).Round(2)

		// Aggressive early payments can drive the figures below zero.
		// The schedule ends here: the previous payment absorbs the
		// remainder instead of this month being recorded.
		if interestAmount.IsNegative() || balance.IsNegative() {
			c.rewriteLastPayment(loan, payments, allocator)
			break
		}

		additionalPayment := decimal.Zero
		earlyPayment, hasEarly := earlyPaymentForMonth(earlyPayments, i)
		if hasEarly {
			additionalPayment = AdjustAdditionalPayment(loan.TaxDeductible, loan.LoanTaxType, loan.TaxPercentage, earlyPayment.Amount)
		}

		var principalAmount decimal.Decimal
		if i+1 == loan.Term {
			// Final-payment correction: clear the whole remaining
			// balance instead of leaving residual cents.
			principalAmount = balance
		} else {
			principalAmount = monthlyPayment.Sub(interestAmount).Add(additionalPayment).Round(2)
		}

		tr := CalculateTax(loan.TaxDeductible, loan.LoanTaxType, loan.TaxPercentage, interestAmount, principalAmount)

		itemPayments := allocator.allocate(principalAmount, additionalPayment)
		allocator.reduce(itemPayments)
		allocator.applyTax(&tr, itemPayments)

		var date *time.Time
		if paymentDate != nil {
			d := *paymentDate
			date = &d
		}
		payments = append(payments, domain.MonthlyPayment{
			MonthNumber:             i,
			LoanBalanceAmount:       balance,
			DebtPaymentAmount:       tr.AdjustedPrincipalAmount,
			InterestPaymentAmount:   tr.AdjustedInterestAmount,
			PaymentAmount:           tr.PaymentAmount(),
			AdditionalPaymentAmount: additionalPayment,
			PaymentDate:             date,
			TaxAmount:               tr.TotalTaxAmount(),
			InterestTaxAmount:       tr.InterestTaxAmount,
			PrincipalTaxAmount:      tr.PrincipalTaxAmount,
			ProductPayments:         itemPayments,
		})

		overPaidInterest = overPaidInterest.Add(interestAmount)
		balance = balance.Sub(tr.AdjustedPrincipalAmount)

		if hasEarly && earlyPayment.Strategy == domain.DecreaseMonthlyPayment {
			// Re-amortize the remaining schedule over the unchanged
			// remaining term. Earlier DECREASE_TERM payments stay part
			// of the base so the shortened horizon is preserved.
			remainingTerm := term - 1 - i
			if remainingTerm > 0 {
				rebase := balance.Add(decreaseTermPaymentsBefore(loan, i))
				monthlyPayment = annuityPayment(rebase, monthlyRate, remainingTerm)
				c.logger.Infof("month %d: recalculated level payment to %s over %d months", i, monthlyPayment, remainingTerm)
			}
		}

		if loan.FirstPaymentDate != nil && paymentDate != nil {
			next := nextMonthPaymentDate(*loan.FirstPaymentDate, *paymentDate)
			paymentDate = &next
		}
	}

	return &domain.LoanAmortization{
		MonthlyPaymentAmount: nominalPayment,
		MonthlyPayments:      payments,
		OverPaymentAmount:    overPaidInterest,
		EarlyPayments:        earlyPayments,
	}, nil
}

// rewriteLastPayment rebuilds the previously recorded payment so that it
// settles the schedule: its pre-payment balance becomes the principal, the
// tax overlay and product allocation are re-applied, and iteration stops.
func (c *annualCalculator) rewriteLastPayment(loan *domain.Loan, payments []domain.MonthlyPayment, allocator *productAllocator) {
	last := len(payments) - 1
	if last < 0 {
		return
	}
	lastPayment := payments[last]

	tr := CalculateTax(loan.TaxDeductible, loan.LoanTaxType, loan.TaxPercentage,
		lastPayment.InterestPaymentAmount, lastPayment.LoanBalanceAmount)

	itemPayments := allocator.allocate(lastPayment.LoanBalanceAmount, decimal.Zero)
	allocator.reduce(itemPayments)
	allocator.applyTax(&tr, itemPayments)

	payments[last] = domain.MonthlyPayment{
		MonthNumber:             lastPayment.MonthNumber,
		LoanBalanceAmount:       lastPayment.LoanBalanceAmount,
		DebtPaymentAmount:       tr.AdjustedPrincipalAmount,
		InterestPaymentAmount:   tr.AdjustedInterestAmount,
		PaymentAmount:           tr.PaymentAmount(),
		AdditionalPaymentAmount: lastPayment.AdditionalPaymentAmount,
		PaymentDate:             lastPayment.PaymentDate,
		TaxAmount:               tr.TotalTaxAmount(),
		InterestTaxAmount:       tr.InterestTaxAmount,
		PrincipalTaxAmount:      tr.PrincipalTaxAmount,
		ProductPayments:         itemPayments,
	}
}

// earlyPaymentForMonth returns the early payment applying to a month:
// a direct entry for the month, or a TO_END declaration at an earlier
// month that is still repeating.
func earlyPaymentForMonth(earlyPayments map[int]domain.EarlyPayment, monthNumber int) (domain.EarlyPayment, bool) {
	if payment, ok := earlyPayments[monthNumber]; ok {
		return payment, true
	}
	for month, payment := range earlyPayments {
		if month < monthNumber && payment.Repeating() == domain.ToEnd {
			return payment, true
		}
	}
	return domain.EarlyPayment{}, false
}

// decreaseTermPaymentsBefore sums the DECREASE_TERM early payments made
// before the given month. They are added back to the balance when a
// DECREASE_MONTHLY_PAYMENT recalculation re-derives the level payment.
func decreaseTermPaymentsBefore(loan *domain.Loan, monthNumber int) decimal.Decimal {
	total := decimal.Zero
	for month, payment := range loan.EarlyPayments {
		if month < monthNumber && payment.Strategy == domain.DecreaseTerm {
			total = total.Add(payment.Amount)
		}
	}
	return total
}

// monthlyInterestRate converts a nominal annual percentage into a monthly
// fraction, each division carried at 15 digits half-up.
func monthlyInterestRate(rate decimal.Decimal) decimal.Decimal {
	return rate.DivRound(hundred, divisionScale).DivRound(twelve, divisionScale)
}

// annuityPayment computes the level payment for a balance at a monthly
// rate over a term: balance * r(1+r)^term / ((1+r)^term - 1).
func annuityPayment(balance, monthlyRate decimal.Decimal, term int) decimal.Decimal {
	growth := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(term)))
	factor := monthlyRate.Mul(growth).DivRound(growth.Sub(one), divisionScale)
	return balance.Mul(factor).Round(2)
}

// nextMonthPaymentDate advances a payment date by one calendar month,
// keeping the first payment's day-of-month and clamping to the last day
// of months that are too short.
func nextMonthPaymentDate(firstPaymentDate, paymentDate time.Time) time.Time {
	year, month, _ := paymentDate.Date()
	month++
	day := firstPaymentDate.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, paymentDate.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
