package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

var centiFactor = decimal.NewFromFloat(0.01)

// productAllocator tracks per-product remaining balances across the
// schedule and splits each month's principal proportionally to them.
type productAllocator struct {
	items    []domain.Item
	balances map[string]decimal.Decimal
	taxed    bool
}

func newProductAllocator(items []domain.Item) *productAllocator {
	balances := make(map[string]decimal.Decimal, len(items))
	taxed := false
	for _, item := range items {
		balances[item.ID] = item.Amount
		if item.Tax != nil {
			taxed = true
		}
	}
	return &productAllocator{items: items, balances: balances, taxed: taxed}
}

// allocate splits the month's principal and additional payment across the
// products in proportion to each product's share of the total remaining
// balance. Products already paid off get a zero-filled record so that the
// schedule stays complete. Returns nil when the loan has no products or
// nothing is left to allocate against.
func (pa *productAllocator) allocate(principalAmount, additionalPaymentAmount decimal.Decimal) []domain.ItemPayment {
	if len(pa.items) == 0 {
		return nil
	}

	totalBalance := decimal.Zero
	for _, balance := range pa.balances {
		totalBalance = totalBalance.Add(balance)
	}
	if totalBalance.Sign() <= 0 {
		return nil
	}

	payments := make([]domain.ItemPayment, 0, len(pa.items))
	for _, item := range pa.items {
		balance := pa.balances[item.ID]
		if balance.Sign() <= 0 {
			payments = append(payments, domain.ItemPayment{
				ProductID:      item.ID,
				ProductName:    item.Name,
				OriginalAmount: item.Amount,
			})
			continue
		}

		proportion := balance.DivRound(totalBalance, 15)
		productPrincipal := principalAmount.Mul(proportion).Round(2)
		productAdditional := additionalPaymentAmount.Mul(proportion).Round(2)

		tax := decimal.Zero
		if item.Tax != nil {
			tax = productPrincipal.Add(productAdditional).Mul(item.Tax.Mul(centiFactor))
		}

		payments = append(payments, domain.ItemPayment{
			ProductID:               item.ID,
			ProductName:             item.Name,
			OriginalAmount:          item.Amount,
			PrincipalAmount:         productPrincipal,
			RemainingBalance:        balance,
			AdditionalPaymentAmount: productAdditional,
			Tax:                     tax,
		})
	}

	return payments
}

// reduce subtracts the allocated shares from the per-product balances.
func (pa *productAllocator) reduce(payments []domain.ItemPayment) {
	for _, payment := range payments {
		balance, ok := pa.balances[payment.ProductID]
		if !ok {
			continue
		}
		pa.balances[payment.ProductID] = balance.
			Sub(payment.PrincipalAmount).
			Sub(payment.AdditionalPaymentAmount)
	}
}

// applyTax replaces the loan-level principal tax with the sum of the
// product-level taxes. Product tax configuration takes precedence over the
// generic principal tax figure whenever both exist.
func (pa *productAllocator) applyTax(tr *TaxResult, payments []domain.ItemPayment) {
	if len(payments) == 0 || !pa.taxed {
		return
	}
	productsTax := decimal.Zero
	for _, payment := range payments {
		productsTax = productsTax.Add(payment.Tax)
	}
	tr.PrincipalTaxAmount = productsTax
	tr.AdjustedPrincipalAmount = tr.OriginalPrincipalAmount.Sub(productsTax)
}
