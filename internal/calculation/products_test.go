package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

func TestProductAllocationProportional(t *testing.T) {
	items := []domain.Item{
		{ID: "a", Name: "Product A", Amount: dec("750.00"), Tax: decPtr("10")},
		{ID: "b", Name: "Product B", Amount: dec("250.00")},
	}
	allocator := newProductAllocator(items)

	payments := allocator.allocate(dec("100.00"), dec("40.00"))
	require.Len(t, payments, 2)

	assert.True(t, payments[0].PrincipalAmount.Equal(dec("75.00")), "got %s", payments[0].PrincipalAmount)
	assert.True(t, payments[0].AdditionalPaymentAmount.Equal(dec("30.00")))
	assert.True(t, payments[0].RemainingBalance.Equal(dec("750.00")), "remaining balance is recorded before the payment")
	assert.True(t, payments[0].Tax.Equal(dec("10.50")), "product tax covers principal plus additional, got %s", payments[0].Tax)

	assert.True(t, payments[1].PrincipalAmount.Equal(dec("25.00")))
	assert.True(t, payments[1].AdditionalPaymentAmount.Equal(dec("10.00")))
	assert.True(t, payments[1].Tax.IsZero(), "product without tax gets none")

	allocator.reduce(payments)
	assert.True(t, allocator.balances["a"].Equal(dec("645.00")))
	assert.True(t, allocator.balances["b"].Equal(dec("215.00")))
}

func TestProductAllocationPaidOffProductGetsZeroRecord(t *testing.T) {
	items := []domain.Item{
		{ID: "a", Name: "Product A", Amount: dec("100.00")},
		{ID: "b", Name: "Product B", Amount: dec("300.00")},
	}
	allocator := newProductAllocator(items)
	allocator.balances["a"] = decimal.Zero

	payments := allocator.allocate(dec("60.00"), decimal.Zero)
	require.Len(t, payments, 2, "paid off products keep a zero-filled record for schedule completeness")

	assert.Equal(t, "a", payments[0].ProductID)
	assert.True(t, payments[0].PrincipalAmount.IsZero())
	assert.True(t, payments[0].RemainingBalance.IsZero())
	assert.True(t, payments[1].PrincipalAmount.Equal(dec("60.00")), "the live product absorbs the full amount")
}

func TestProductAllocationNothingLeft(t *testing.T) {
	items := []domain.Item{{ID: "a", Name: "Product A", Amount: dec("100.00")}}
	allocator := newProductAllocator(items)
	allocator.balances["a"] = dec("-3.00")

	assert.Nil(t, allocator.allocate(dec("60.00"), decimal.Zero))
}

func TestProductAllocationNoProducts(t *testing.T) {
	allocator := newProductAllocator(nil)
	assert.Nil(t, allocator.allocate(dec("60.00"), decimal.Zero))
}

func TestApplyTaxOverwritesPrincipalTax(t *testing.T) {
	items := []domain.Item{{ID: "a", Name: "Product A", Amount: dec("1000.00"), Tax: decPtr("10")}}
	allocator := newProductAllocator(items)

	tr := CalculateTax(boolPtr(false), taxTypePtr(domain.Both), decPtr("21"), dec("100.00"), dec("500.00"))
	require.True(t, tr.PrincipalTaxAmount.Equal(dec("105.00")))

	payments := allocator.allocate(dec("500.00"), decimal.Zero)
	allocator.applyTax(&tr, payments)

	assert.True(t, tr.PrincipalTaxAmount.Equal(dec("50.00")), "product tax takes precedence, got %s", tr.PrincipalTaxAmount)
	assert.True(t, tr.AdjustedPrincipalAmount.Equal(dec("450.00")), "adjusted principal reflects the product tax")
	assert.True(t, tr.InterestTaxAmount.Equal(dec("21.00")), "interest tax is untouched")
}

func TestApplyTaxNoOpWithoutProductTax(t *testing.T) {
	items := []domain.Item{{ID: "a", Name: "Product A", Amount: dec("1000.00")}}
	allocator := newProductAllocator(items)

	tr := CalculateTax(boolPtr(false), taxTypePtr(domain.Both), decPtr("21"), dec("100.00"), dec("500.00"))
	payments := allocator.allocate(dec("500.00"), decimal.Zero)
	allocator.applyTax(&tr, payments)

	assert.True(t, tr.PrincipalTaxAmount.Equal(dec("105.00")), "without product tax the loan-level figure stands")
}
