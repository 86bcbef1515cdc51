package config

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	loan, err := parser.LoadFromFile(filepath.Join("testdata", "loan.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "500000.32", loan.Amount.String())
	assert.Equal(t, "4.56", loan.Rate.String())
	assert.Equal(t, 32, loan.Term)
	assert.Equal(t, domain.AnnualBalanced, loan.LoanType)

	require.NotNil(t, loan.FirstPaymentDate)
	assert.Equal(t, "2014-07-02", loan.FirstPaymentDate.Format("2006-01-02"))

	require.NotNil(t, loan.TaxDeductible)
	assert.True(t, *loan.TaxDeductible)
	require.NotNil(t, loan.TaxPercentage)
	assert.Equal(t, "21", loan.TaxPercentage.String())
	require.NotNil(t, loan.LoanTaxType)
	assert.Equal(t, domain.InterestOnly, *loan.LoanTaxType)

	require.Len(t, loan.EarlyPayments, 2)
	single := loan.EarlyPayments[3]
	assert.Equal(t, "50000", single.Amount.String())
	assert.Equal(t, domain.DecreaseTerm, single.Strategy)
	assert.Equal(t, domain.Single, single.Repeating())

	repeating := loan.EarlyPayments[10]
	assert.Equal(t, domain.DecreaseMonthlyPayment, repeating.Strategy)
	assert.Equal(t, domain.ToCertainMonth, repeating.Repeating())
	assert.Equal(t, "15", repeating.Parameters[domain.RepeatToMonthNumber])

	require.Len(t, loan.Products, 2)
	assert.Equal(t, "house", loan.Products[0].ID)
	require.NotNil(t, loan.Products[0].Tax)
	assert.Equal(t, "10", loan.Products[0].Tax.String())
	assert.Nil(t, loan.Products[1].Tax)
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join("testdata", "does-not-exist.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadAcceptsJSON(t *testing.T) {
	parser := NewInputParser()

	loan, err := parser.Load([]byte(`{"amount": "100000", "rate": "5.5", "term": 12, "loan_type": "FIXED_INTEREST"}`))
	require.NoError(t, err)
	assert.Equal(t, "100000", loan.Amount.String())
	assert.Equal(t, domain.FixedInterest, loan.LoanType)
	assert.Equal(t, 12, loan.Term)
}

func TestLoadRejectsMalformedInput(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.Load([]byte("amount: [not, a, number"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse loan input")
}

func TestValidateLoan(t *testing.T) {
	valid := func() *domain.Loan {
		return &domain.Loan{
			Amount:   dec("500000.32"),
			Rate:     dec("4.56"),
			Term:     32,
			LoanType: domain.AnnualBalanced,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Loan)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(l *domain.Loan) {},
		},
		{
			name:    "missing amount",
			mutate:  func(l *domain.Loan) { l.Amount = dec("0") },
			wantErr: "amount must be positive",
		},
		{
			name:    "missing rate",
			mutate:  func(l *domain.Loan) { l.Rate = dec("0") },
			wantErr: "rate must be positive",
		},
		{
			name:    "missing term",
			mutate:  func(l *domain.Loan) { l.Term = 0 },
			wantErr: "term must be positive",
		},
		{
			name:    "missing loan type",
			mutate:  func(l *domain.Loan) { l.LoanType = "" },
			wantErr: "loan_type is required",
		},
		{
			name:    "unknown loan type",
			mutate:  func(l *domain.Loan) { l.LoanType = "BALLOON" },
			wantErr: `unknown loan_type "BALLOON"`,
		},
		{
			name: "unknown tax type",
			mutate: func(l *domain.Loan) {
				taxType := domain.LoanTaxType("VAT")
				l.LoanTaxType = &taxType
			},
			wantErr: `unknown loan_tax_type "VAT"`,
		},
		{
			name: "negative tax percentage",
			mutate: func(l *domain.Loan) {
				rate := dec("-1")
				l.TaxPercentage = &rate
			},
			wantErr: "tax_percentage must not be negative",
		},
		{
			name: "early payment without strategy",
			mutate: func(l *domain.Loan) {
				l.EarlyPayments = map[int]domain.EarlyPayment{
					3: {Amount: dec("1000")},
				}
			},
			wantErr: "strategy is required",
		},
		{
			name: "early payment unknown repeating strategy",
			mutate: func(l *domain.Loan) {
				l.EarlyPayments = map[int]domain.EarlyPayment{
					3: {Amount: dec("1000"), Strategy: domain.DecreaseTerm, RepeatingStrategy: "FOREVER"},
				}
			},
			wantErr: `unknown repeating strategy "FOREVER"`,
		},
		{
			name: "repeating to month without parameter",
			mutate: func(l *domain.Loan) {
				l.EarlyPayments = map[int]domain.EarlyPayment{
					3: {Amount: dec("1000"), Strategy: domain.DecreaseTerm, RepeatingStrategy: domain.ToCertainMonth},
				}
			},
			wantErr: "REPEAT_TO_MONTH_NUMBER parameter is required",
		},
		{
			name: "repeating to month non-numeric parameter",
			mutate: func(l *domain.Loan) {
				l.EarlyPayments = map[int]domain.EarlyPayment{
					3: {
						Amount:            dec("1000"),
						Strategy:          domain.DecreaseTerm,
						RepeatingStrategy: domain.ToCertainMonth,
						Parameters:        map[string]string{domain.RepeatToMonthNumber: "soon"},
					},
				}
			},
			wantErr: `parameter "soon" is not a number`,
		},
		{
			name: "product without id",
			mutate: func(l *domain.Loan) {
				l.Products = []domain.Item{{Name: "House", Amount: dec("500000.32")}}
			},
			wantErr: "product 0 has no id",
		},
		{
			name: "duplicate product id",
			mutate: func(l *domain.Loan) {
				l.Products = []domain.Item{
					{ID: "a", Name: "A", Amount: dec("250000.16")},
					{ID: "a", Name: "B", Amount: dec("250000.16")},
				}
			},
			wantErr: `duplicate product id "a"`,
		},
		{
			name: "non-positive product amount",
			mutate: func(l *domain.Loan) {
				l.Products = []domain.Item{{ID: "a", Name: "A", Amount: dec("0")}}
			},
			wantErr: `product "a" amount must be positive`,
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := valid()
			tt.mutate(loan)
			err := parser.ValidateLoan(loan)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
