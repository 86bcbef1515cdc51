package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func sampleResult() *domain.LoanAmortization {
	date := time.Date(2014, 7, 2, 0, 0, 0, 0, time.UTC)
	return &domain.LoanAmortization{
		MonthlyPaymentAmount: dec("16623.89"),
		OverPaymentAmount:    dec("31964.18"),
		MonthlyPayments: []domain.MonthlyPayment{
			{
				MonthNumber:             0,
				LoanBalanceAmount:       dec("500000.32"),
				DebtPaymentAmount:       dec("14723.89"),
				InterestPaymentAmount:   dec("1900.00"),
				PaymentAmount:           dec("16623.89"),
				AdditionalPaymentAmount: dec("0"),
				PaymentDate:             &date,
				ProductPayments: []domain.ItemPayment{
					{
						ProductID:       "house",
						ProductName:     "House",
						OriginalAmount:  dec("500000.32"),
						PrincipalAmount: dec("14723.89"),
						Tax:             dec("0"),
					},
				},
			},
		},
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "console"},
		{"console", "console"},
		{"csv", "csv"},
		{"json", "json"},
	}
	for _, tt := range tests {
		f, err := NewFormatter(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, f.Name())
	}

	_, err := NewFormatter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestConsoleFormat(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Monthly payment:  16623.89")
	assert.Contains(t, text, "Overpayment:      31964.18")
	assert.Contains(t, text, "Scheduled months: 1")
	assert.Contains(t, text, "2014-07-02")
	assert.Contains(t, text, "14723.89")
	assert.Contains(t, text, "Month 0 product allocation:")
	assert.Contains(t, text, "House (house): principal 14723.89")
}

func TestCSVFormat(t *testing.T) {
	out, err := CSVFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Month", "Date", "Balance", "Principal", "Interest", "InterestTax", "PrincipalTax", "Additional", "Payment"}, records[0])
	assert.Equal(t, []string{"0", "2014-07-02", "500000.32", "14723.89", "1900.00", "0.00", "0.00", "0.00", "16623.89"}, records[1])
}

func TestJSONFormat(t *testing.T) {
	out, err := JSONFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	var decoded domain.LoanAmortization
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, decoded.MonthlyPaymentAmount.Equal(dec("16623.89")))
	require.Len(t, decoded.MonthlyPayments, 1)
	assert.True(t, decoded.MonthlyPayments[0].LoanBalanceAmount.Equal(dec("500000.32")))

	// Field names are stable camelCase keys.
	assert.Contains(t, string(out), `"monthlyPaymentAmount"`)
	assert.Contains(t, string(out), `"loanBalanceAmount"`)
	assert.Contains(t, string(out), `"productPayments"`)
}
