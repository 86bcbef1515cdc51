package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// ConsoleFormatter renders the schedule as an aligned text table with a
// summary header.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.LoanAmortization) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "Monthly payment:  %s\n", result.MonthlyPaymentAmount.StringFixed(2))
	fmt.Fprintf(buf, "Overpayment:      %s\n", result.OverPaymentAmount.StringFixed(2))
	fmt.Fprintf(buf, "Scheduled months: %d\n\n", len(result.MonthlyPayments))

	w := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Month\tDate\tBalance\tPrincipal\tInterest\tTax\tAdditional\tPayment\t")
	for _, p := range result.MonthlyPayments {
		date := ""
		if p.PaymentDate != nil {
			date = p.PaymentDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.MonthNumber,
			date,
			p.LoanBalanceAmount.StringFixed(2),
			p.DebtPaymentAmount.StringFixed(2),
			p.InterestPaymentAmount.StringFixed(2),
			p.TaxAmount.StringFixed(2),
			p.AdditionalPaymentAmount.StringFixed(2),
			p.PaymentAmount.StringFixed(2),
		)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	for _, p := range result.MonthlyPayments {
		if len(p.ProductPayments) == 0 {
			continue
		}
		fmt.Fprintf(buf, "\nMonth %d product allocation:\n", p.MonthNumber)
		for _, ip := range p.ProductPayments {
			fmt.Fprintf(buf, "  %s (%s): principal %s, additional %s, tax %s\n",
				ip.ProductName, ip.ProductID,
				ip.PrincipalAmount.StringFixed(2),
				ip.AdditionalPaymentAmount.StringFixed(2),
				ip.Tax.StringFixed(2))
		}
	}

	return buf.Bytes(), nil
}
