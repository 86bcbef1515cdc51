package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// TaxResult is the tax-adjusted split of one payment. When the loan carries
// no tax configuration the result is a pass-through: adjusted amounts equal
// the originals, tax amounts are zero and Applied is false.
type TaxResult struct {
	OriginalInterestAmount  decimal.Decimal
	OriginalPrincipalAmount decimal.Decimal
	AdjustedInterestAmount  decimal.Decimal
	AdjustedPrincipalAmount decimal.Decimal
	InterestTaxAmount       decimal.Decimal
	PrincipalTaxAmount      decimal.Decimal
	TaxIncluded             bool
	Applied                 bool
}

// TotalTaxAmount is the combined interest and principal tax of the payment.
func (tr TaxResult) TotalTaxAmount() decimal.Decimal {
	return tr.InterestTaxAmount.Add(tr.PrincipalTaxAmount)
}

// TotalAdjustedAmount is the sum of the adjusted components, or zero when
// no tax was configured so that callers can tell a no-op result apart.
func (tr TaxResult) TotalAdjustedAmount() decimal.Decimal {
	if !tr.Applied {
		return decimal.Zero
	}
	return tr.AdjustedInterestAmount.Add(tr.AdjustedPrincipalAmount)
}

// PaymentAmount is the total cash flow of the payment: the adjusted
// components, plus the tax on top when the tax is not already included in
// the stated amounts.
func (tr TaxResult) PaymentAmount() decimal.Decimal {
	base := tr.AdjustedInterestAmount.Add(tr.AdjustedPrincipalAmount)
	if tr.TaxIncluded {
		return base
	}
	return base.Add(tr.TotalTaxAmount())
}

// CalculateTax rewrites the interest/principal split of one payment under
// the loan's tax configuration.
//
// taxIncluded=true means the stated amounts already contain the tax, which
// is extracted; taxIncluded=false means the tax is computed and added on
// top, leaving the stated amounts unchanged. When any of the three tax
// fields is absent the overlay is inactive.
func CalculateTax(taxIncluded *bool, taxType *domain.LoanTaxType, taxRate *decimal.Decimal, interestAmount, principalAmount decimal.Decimal) TaxResult {
	tr := TaxResult{
		OriginalInterestAmount:  interestAmount,
		OriginalPrincipalAmount: principalAmount,
		AdjustedInterestAmount:  interestAmount,
		AdjustedPrincipalAmount: principalAmount,
	}
	if taxIncluded == nil || taxType == nil || taxRate == nil {
		return tr
	}

	tr.Applied = true
	tr.TaxIncluded = *taxIncluded

	taxesInterest := *taxType == domain.InterestOnly || *taxType == domain.Both
	taxesPrincipal := *taxType == domain.PrincipalOnly || *taxType == domain.Both

	if *taxIncluded {
		if taxesInterest {
			tr.InterestTaxAmount = extractIncludedTax(*taxRate, interestAmount)
			tr.AdjustedInterestAmount = interestAmount.Sub(tr.InterestTaxAmount)
		}
		if taxesPrincipal {
			tr.PrincipalTaxAmount = extractIncludedTax(*taxRate, principalAmount)
			tr.AdjustedPrincipalAmount = principalAmount.Sub(tr.PrincipalTaxAmount)
		}
		return tr
	}

	if taxesInterest {
		tr.InterestTaxAmount = calculateExcludedTax(*taxRate, interestAmount)
	}
	if taxesPrincipal {
		tr.PrincipalTaxAmount = calculateExcludedTax(*taxRate, principalAmount)
	}
	return tr
}

// AdjustAdditionalPayment strips the included tax from a raw early-payment
// amount before it is treated as principal. The adjustment only applies
// when the tax is included in stated amounts and the tax type covers the
// principal component; otherwise the amount passes through unchanged.
func AdjustAdditionalPayment(taxIncluded *bool, taxType *domain.LoanTaxType, taxRate *decimal.Decimal, amount decimal.Decimal) decimal.Decimal {
	if taxIncluded == nil || taxType == nil || taxRate == nil {
		return amount
	}
	if !*taxIncluded {
		return amount
	}
	if *taxType != domain.Both && *taxType != domain.PrincipalOnly {
		return amount
	}
	return amount.Sub(extractIncludedTax(*taxRate, amount))
}

// extractIncludedTax computes the tax portion embedded in an amount that
// already contains tax: amount - amount/(1 + rate/100), with the rate and
// the division both carried at 2 decimals, half-up.
func extractIncludedTax(rate, amount decimal.Decimal) decimal.Decimal {
	taxRate := rate.DivRound(hundred, 2)
	base := amount.DivRound(one.Add(taxRate), 2)
	return amount.Sub(base)
}

// calculateExcludedTax computes the tax added on top of an amount stated
// without tax: amount * rate/100, rounded half-up to 2 decimals.
func calculateExcludedTax(rate, amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred).Round(2)
}
