package calculation

import (
	"fmt"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// CalculationEngine validates a loan, resolves its repeating early
// payments and routes it to the calculator matching the loan type.
//
// The engine holds no per-call state; concurrent callers may share one
// instance as long as each call gets its own Loan.
type CalculationEngine struct {
	logger Logger
}

// NewCalculationEngine creates an engine with logging disabled.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{logger: NopLogger{}}
}

// SetLogger installs a logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	ce.logger = logger
}

// Calculate computes the month-by-month amortization schedule for a loan.
//
// Validation failures and unknown enum values return ErrInvalidInput; an
// early payment that cannot be absorbed returns ErrInfeasible. The input
// loan is never mutated.
func (ce *CalculationEngine) Calculate(loan *domain.Loan) (*domain.LoanAmortization, error) {
	if err := ce.validate(loan); err != nil {
		return nil, err
	}

	resolved, err := resolveEarlyPayments(loan)
	if err != nil {
		return nil, err
	}
	loan = loan.WithEarlyPayments(resolved)
	ce.logger.Debugf("resolved %d early payment months", len(resolved))

	switch loan.LoanType {
	case domain.AnnualBalanced:
		calc := annualCalculator{logger: ce.logger}
		return calc.calculate(loan)
	case domain.FixedInterest:
		calc := fixedCalculator{logger: ce.logger}
		return calc.calculate(loan)
	default:
		return nil, fmt.Errorf("%w: unsupported loan type %q", ErrInvalidInput, loan.LoanType)
	}
}

func (ce *CalculationEngine) validate(loan *domain.Loan) error {
	if loan == nil {
		return fmt.Errorf("%w: loan is required", ErrInvalidInput)
	}
	if loan.Amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, loan.Amount)
	}
	if loan.Rate.Sign() <= 0 {
		return fmt.Errorf("%w: rate must be positive, got %s", ErrInvalidInput, loan.Rate)
	}
	if loan.Term <= 0 {
		return fmt.Errorf("%w: term must be positive, got %d", ErrInvalidInput, loan.Term)
	}

	for month, payment := range loan.EarlyPayments {
		if month < 0 {
			return fmt.Errorf("%w: early payment month %d is negative", ErrInvalidInput, month)
		}
		if payment.Amount.Sign() < 0 {
			return fmt.Errorf("%w: early payment at month %d has a negative amount %s", ErrInvalidInput, month, payment.Amount)
		}
		switch payment.Strategy {
		case domain.DecreaseTerm, domain.DecreaseMonthlyPayment:
		case "":
			return fmt.Errorf("%w: early payment at month %d has no strategy", ErrInvalidInput, month)
		default:
			return fmt.Errorf("%w: early payment at month %d has unknown strategy %q", ErrInvalidInput, month, payment.Strategy)
		}
	}

	if len(loan.Products) > 0 {
		productSum := loan.ProductSum()
		if !productSum.Equal(loan.Amount) {
			ce.logger.Warnf("sum of product amounts (%s) does not match loan amount (%s)", productSum, loan.Amount)
			return fmt.Errorf("%w: sum of product amounts (%s) does not match loan amount (%s)", ErrInvalidInput, productSum, loan.Amount)
		}
	}

	return nil
}
