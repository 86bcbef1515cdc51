package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// CSVFormatter writes one row per scheduled month.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.LoanAmortization) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Month", "Date", "Balance", "Principal", "Interest", "InterestTax", "PrincipalTax", "Additional", "Payment"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range result.MonthlyPayments {
		date := ""
		if p.PaymentDate != nil {
			date = p.PaymentDate.Format("2006-01-02")
		}
		row := []string{
			strconv.Itoa(p.MonthNumber),
			date,
			p.LoanBalanceAmount.StringFixed(2),
			p.DebtPaymentAmount.StringFixed(2),
			p.InterestPaymentAmount.StringFixed(2),
			p.InterestTaxAmount.StringFixed(2),
			p.PrincipalTaxAmount.StringFixed(2),
			p.AdditionalPaymentAmount.StringFixed(2),
			p.PaymentAmount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
