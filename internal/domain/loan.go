package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanType selects the amortization model for a loan.
type LoanType string

const (
	// AnnualBalanced is the annuity model: a level monthly payment whose
	// interest portion declines as the balance is paid down.
	AnnualBalanced LoanType = "ANNUAL_BALANCED"

	// FixedInterest is the flat model: interest is a constant fraction of
	// the original principal for the life of the loan.
	FixedInterest LoanType = "FIXED_INTEREST"
)

// EarlyPaymentStrategy determines how an extra principal payment is absorbed
// by the remaining schedule.
type EarlyPaymentStrategy string

const (
	// DecreaseTerm keeps the payment amount level and lets the loan pay
	// off sooner.
	DecreaseTerm EarlyPaymentStrategy = "DECREASE_TERM"

	// DecreaseMonthlyPayment re-amortizes the remaining balance over the
	// unchanged remaining term, lowering the recurring payment.
	DecreaseMonthlyPayment EarlyPaymentStrategy = "DECREASE_MONTHLY_PAYMENT"
)

// EarlyPaymentRepeatingStrategy expands one declared early payment into
// several months.
type EarlyPaymentRepeatingStrategy string

const (
	// Single occurs only at its declared month.
	Single EarlyPaymentRepeatingStrategy = "SINGLE"

	// ToEnd repeats from the declared month through the end of the term.
	ToEnd EarlyPaymentRepeatingStrategy = "TO_END"

	// ToCertainMonth repeats from the declared month up to and including
	// the month named by the RepeatToMonthNumber parameter.
	ToCertainMonth EarlyPaymentRepeatingStrategy = "TO_CERTAIN_MONTH"
)

// RepeatToMonthNumber is the parameter key holding the terminal month of a
// TO_CERTAIN_MONTH repeating early payment, as a decimal string.
const RepeatToMonthNumber = "REPEAT_TO_MONTH_NUMBER"

// LoanTaxType selects which payment components the tax overlay applies to.
type LoanTaxType string

const (
	InterestOnly  LoanTaxType = "INTEREST_ONLY"
	PrincipalOnly LoanTaxType = "PRINCIPAL_ONLY"
	Both          LoanTaxType = "BOTH"
)

// EarlyPayment is an extra principal payment applied in a specific month.
type EarlyPayment struct {
	Amount            decimal.Decimal               `yaml:"amount" json:"amount"`
	Strategy          EarlyPaymentStrategy          `yaml:"strategy" json:"strategy"`
	RepeatingStrategy EarlyPaymentRepeatingStrategy `yaml:"repeating_strategy,omitempty" json:"repeatingStrategy,omitempty"`
	Parameters        map[string]string             `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Repeating returns the repeating strategy, defaulting to Single when the
// field was left empty in the input.
func (ep EarlyPayment) Repeating() EarlyPaymentRepeatingStrategy {
	if ep.RepeatingStrategy == "" {
		return Single
	}
	return ep.RepeatingStrategy
}

// Item is a product component of the loan principal, tracked with its own
// remaining balance and optional own tax percentage.
type Item struct {
	ID     string           `yaml:"id" json:"id"`
	Name   string           `yaml:"name" json:"name"`
	Amount decimal.Decimal  `yaml:"amount" json:"amount"`
	Tax    *decimal.Decimal `yaml:"tax,omitempty" json:"tax,omitempty"`
}

// Loan is the immutable input to the amortization engine.
//
// Amount, Rate and Term are required and must be positive. The tax fields
// travel together: when any of TaxDeductible, LoanTaxType or TaxPercentage
// is absent the tax overlay is inactive.
type Loan struct {
	Amount           decimal.Decimal      `yaml:"amount" json:"amount"`
	Rate             decimal.Decimal      `yaml:"rate" json:"rate"`
	Term             int                  `yaml:"term" json:"term"`
	LoanType         LoanType             `yaml:"loan_type" json:"loanType"`
	FirstPaymentDate *time.Time           `yaml:"first_payment_date,omitempty" json:"firstPaymentDate,omitempty"`
	EarlyPayments    map[int]EarlyPayment `yaml:"early_payments,omitempty" json:"earlyPayments,omitempty"`
	TaxPercentage    *decimal.Decimal     `yaml:"tax_percentage,omitempty" json:"taxPercentage,omitempty"`
	LoanTaxType      *LoanTaxType         `yaml:"loan_tax_type,omitempty" json:"loanTaxType,omitempty"`
	TaxDeductible    *bool                `yaml:"tax_deductible,omitempty" json:"taxDeductible,omitempty"`
	Products         []Item               `yaml:"products,omitempty" json:"products,omitempty"`
}

// ProductSum returns the sum of all product amounts.
func (l *Loan) ProductSum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range l.Products {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// WithEarlyPayments returns a copy of the loan carrying the given early
// payment map instead of the declared one. The engine uses this to replace
// repeating declarations with their concrete per-month expansion.
func (l *Loan) WithEarlyPayments(earlyPayments map[int]EarlyPayment) *Loan {
	resolved := *l
	resolved.EarlyPayments = earlyPayments
	return &resolved
}
