package calculation

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// resolveEarlyPayments flattens the declared early payments into concrete
// per-month entries.
//
// SINGLE declarations pass through unchanged. At most one declaration with
// a repeating strategy is honored per loan: the first one in ascending
// month order is expanded and any further repeating declarations are
// dropped. Overlapping repeating declarations have no defined semantics,
// so this is documented policy rather than a limitation to lift. An
// expanded entry replaces a SINGLE entry declared at the same month.
func resolveEarlyPayments(loan *domain.Loan) (map[int]domain.EarlyPayment, error) {
	if loan.EarlyPayments == nil {
		return nil, nil
	}

	resolved := make(map[int]domain.EarlyPayment, len(loan.EarlyPayments))
	for month, payment := range loan.EarlyPayments {
		if payment.Repeating() == domain.Single {
			resolved[month] = payment
		}
	}

	months := make([]int, 0, len(loan.EarlyPayments))
	for month := range loan.EarlyPayments {
		months = append(months, month)
	}
	sort.Ints(months)

	for _, month := range months {
		payment := loan.EarlyPayments[month]
		if payment.Repeating() == domain.Single {
			continue
		}
		expanded, err := expandRepeating(loan, month, payment)
		if err != nil {
			return nil, err
		}
		for m, p := range expanded {
			resolved[m] = p
		}
		break
	}

	return resolved, nil
}

// expandRepeating turns one repeating declaration into its concrete months.
func expandRepeating(loan *domain.Loan, month int, payment domain.EarlyPayment) (map[int]domain.EarlyPayment, error) {
	lastMonth := 0
	switch payment.Repeating() {
	case domain.ToEnd:
		lastMonth = loan.Term - 1
	case domain.ToCertainMonth:
		raw, ok := payment.Parameters[domain.RepeatToMonthNumber]
		if !ok {
			return nil, fmt.Errorf("%w: early payment at month %d repeats to a certain month but has no %s parameter", ErrInvalidInput, month, domain.RepeatToMonthNumber)
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: early payment at month %d has a non-numeric %s parameter %q", ErrInvalidInput, month, domain.RepeatToMonthNumber, raw)
		}
		lastMonth = parsed
	default:
		return nil, fmt.Errorf("%w: unknown early payment repeating strategy %q", ErrInvalidInput, payment.RepeatingStrategy)
	}

	expanded := make(map[int]domain.EarlyPayment, lastMonth-month+1)
	for m := month; m <= lastMonth; m++ {
		expanded[m] = domain.EarlyPayment{
			Amount:            payment.Amount,
			Strategy:          payment.Strategy,
			RepeatingStrategy: domain.Single,
		}
	}
	return expanded, nil
}
