package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPayment is one product's share of a month's principal reduction.
type ItemPayment struct {
	ProductID               string          `yaml:"product_id" json:"productId"`
	ProductName             string          `yaml:"product_name" json:"productName"`
	OriginalAmount          decimal.Decimal `yaml:"original_amount" json:"originalAmount"`
	PrincipalAmount         decimal.Decimal `yaml:"principal_amount" json:"principalAmount"`
	RemainingBalance        decimal.Decimal `yaml:"remaining_balance" json:"remainingBalance"`
	AdditionalPaymentAmount decimal.Decimal `yaml:"additional_payment_amount" json:"additionalPaymentAmount"`
	Tax                     decimal.Decimal `yaml:"tax" json:"tax"`
}

// MonthlyPayment is one scheduled month of the amortization result.
//
// LoanBalanceAmount is the balance before this payment. Debt and interest
// components are tax-adjusted; PaymentAmount is the total cash flow of the
// month including excluded tax when the overlay adds tax on top.
type MonthlyPayment struct {
	MonthNumber             int             `yaml:"month_number" json:"monthNumber"`
	LoanBalanceAmount       decimal.Decimal `yaml:"loan_balance_amount" json:"loanBalanceAmount"`
	DebtPaymentAmount       decimal.Decimal `yaml:"debt_payment_amount" json:"debtPaymentAmount"`
	InterestPaymentAmount   decimal.Decimal `yaml:"interest_payment_amount" json:"interestPaymentAmount"`
	PaymentAmount           decimal.Decimal `yaml:"payment_amount" json:"paymentAmount"`
	AdditionalPaymentAmount decimal.Decimal `yaml:"additional_payment_amount" json:"additionalPaymentAmount"`
	PaymentDate             *time.Time      `yaml:"payment_date,omitempty" json:"paymentDate,omitempty"`
	TaxAmount               decimal.Decimal `yaml:"tax_amount" json:"taxAmount"`
	InterestTaxAmount       decimal.Decimal `yaml:"interest_tax_amount" json:"interestTaxAmount"`
	PrincipalTaxAmount      decimal.Decimal `yaml:"principal_tax_amount" json:"principalTaxAmount"`
	ProductPayments         []ItemPayment   `yaml:"product_payments,omitempty" json:"productPayments,omitempty"`
}

// LoanAmortization is the final schedule for one calculate call.
//
// MonthlyPaymentAmount is the nominal recurring payment before any
// early-payment recalculation. MonthlyPayments may hold fewer entries than
// the loan term when early payments retire the balance sooner.
// OverPaymentAmount is the interest actually paid over the schedule.
type LoanAmortization struct {
	MonthlyPaymentAmount decimal.Decimal      `yaml:"monthly_payment_amount" json:"monthlyPaymentAmount"`
	MonthlyPayments      []MonthlyPayment     `yaml:"monthly_payments" json:"monthlyPayments"`
	OverPaymentAmount    decimal.Decimal      `yaml:"over_payment_amount" json:"overPaymentAmount"`
	EarlyPayments        map[int]EarlyPayment `yaml:"early_payments,omitempty" json:"earlyPayments,omitempty"`
}

// TotalDebtPaid sums the tax-adjusted principal components of the schedule.
func (la *LoanAmortization) TotalDebtPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range la.MonthlyPayments {
		total = total.Add(p.DebtPaymentAmount)
	}
	return total
}

// TotalInterestPaid sums the tax-adjusted interest components of the schedule.
func (la *LoanAmortization) TotalInterestPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range la.MonthlyPayments {
		total = total.Add(p.InterestPaymentAmount)
	}
	return total
}
