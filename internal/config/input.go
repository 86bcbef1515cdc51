package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// InputParser handles parsing of loan input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a loan from a YAML or JSON file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Loan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses a loan from raw YAML or JSON bytes and validates it.
func (ip *InputParser) Load(data []byte) (*domain.Loan, error) {
	var loan domain.Loan
	if err := yaml.Unmarshal(data, &loan); err != nil {
		return nil, fmt.Errorf("failed to parse loan input: %w", err)
	}

	if err := ip.ValidateLoan(&loan); err != nil {
		return nil, fmt.Errorf("loan validation failed: %w", err)
	}

	return &loan, nil
}

// ValidateLoan checks the file-level shape of a loan: required fields,
// known enum values and well-formed early payment declarations. The
// calculation engine re-validates the numeric invariants before
// scheduling.
func (ip *InputParser) ValidateLoan(loan *domain.Loan) error {
	if loan.Amount.Sign() <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if loan.Rate.Sign() <= 0 {
		return fmt.Errorf("rate must be positive")
	}
	if loan.Term <= 0 {
		return fmt.Errorf("term must be positive")
	}

	switch loan.LoanType {
	case domain.AnnualBalanced, domain.FixedInterest:
	case "":
		return fmt.Errorf("loan_type is required")
	default:
		return fmt.Errorf("unknown loan_type %q", loan.LoanType)
	}

	if loan.LoanTaxType != nil {
		switch *loan.LoanTaxType {
		case domain.InterestOnly, domain.PrincipalOnly, domain.Both:
		default:
			return fmt.Errorf("unknown loan_tax_type %q", *loan.LoanTaxType)
		}
	}
	if loan.TaxPercentage != nil && loan.TaxPercentage.Sign() < 0 {
		return fmt.Errorf("tax_percentage must not be negative")
	}

	for month, payment := range loan.EarlyPayments {
		if err := ip.validateEarlyPayment(month, payment); err != nil {
			return fmt.Errorf("early payment at month %d: %w", month, err)
		}
	}

	seen := make(map[string]bool, len(loan.Products))
	for i, item := range loan.Products {
		if item.ID == "" {
			return fmt.Errorf("product %d has no id", i)
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate product id %q", item.ID)
		}
		seen[item.ID] = true
		if item.Amount.Sign() <= 0 {
			return fmt.Errorf("product %q amount must be positive", item.ID)
		}
	}

	return nil
}

func (ip *InputParser) validateEarlyPayment(month int, payment domain.EarlyPayment) error {
	if month < 0 {
		return fmt.Errorf("month is negative")
	}
	if payment.Amount.Sign() < 0 {
		return fmt.Errorf("amount is negative")
	}

	switch payment.Strategy {
	case domain.DecreaseTerm, domain.DecreaseMonthlyPayment:
	case "":
		return fmt.Errorf("strategy is required")
	default:
		return fmt.Errorf("unknown strategy %q", payment.Strategy)
	}

	switch payment.Repeating() {
	case domain.Single, domain.ToEnd:
	case domain.ToCertainMonth:
		raw, ok := payment.Parameters[domain.RepeatToMonthNumber]
		if !ok {
			return fmt.Errorf("%s parameter is required for %s", domain.RepeatToMonthNumber, domain.ToCertainMonth)
		}
		if _, err := strconv.Atoi(raw); err != nil {
			return fmt.Errorf("%s parameter %q is not a number", domain.RepeatToMonthNumber, raw)
		}
	default:
		return fmt.Errorf("unknown repeating strategy %q", payment.RepeatingStrategy)
	}

	return nil
}
