package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mokha/internal/domain"
)

func i64(v int64) *int64 { return &v }

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 101, Name: domain.LocalizedString{EN: "Espresso"}, BasePrice: decimal.NewFromInt(3), Stock: 100, LowStockThreshold: i64(10)},
		{ID: 102, Name: domain.LocalizedString{EN: "Cappuccino"}, BasePrice: decimal.NewFromInt(4), Variants: []domain.Variant{
			{ID: "sm", Name: domain.LocalizedString{EN: "Small"}, Stock: 30},
			{ID: "md", Name: domain.LocalizedString{EN: "Medium"}, Stock: 50, LowStockThreshold: i64(5)},
		}},
		{ID: 103, Name: domain.LocalizedString{EN: "Tea"}, BasePrice: decimal.NewFromInt(2), Stock: 20},
	}
}

func TestApplyDecrement(t *testing.T) {
	s := Settler{}
	out, err := s.Apply(testCatalog(), []Op{
		{Kind: OpDecrement, ProductID: 101, Qty: 7},
		{Kind: OpDecrement, ProductID: 102, VariantID: "md", Qty: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(93), out[0].Stock)
	assert.Equal(t, int64(47), out[1].Variants[1].Stock)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := testCatalog()
	_, err := Settler{}.Apply(in, []Op{
		{Kind: OpDecrement, ProductID: 101, Qty: 50},
		{Kind: OpSet, ProductID: 102, VariantID: "sm", Qty: 1},
		{Kind: OpDelete, ProductID: 103},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), in[0].Stock)
	assert.Equal(t, int64(30), in[1].Variants[0].Stock)
	assert.Len(t, in, 3)
}

func TestApplySetOverwrites(t *testing.T) {
	out, err := Settler{}.Apply(testCatalog(), []Op{
		{Kind: OpSet, ProductID: 103, Qty: 0},
		{Kind: OpSet, ProductID: 102, VariantID: "sm", Qty: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out[2].Stock)
	assert.Equal(t, int64(5), out[1].Variants[0].Stock)
}

func TestApplyVariantDelete(t *testing.T) {
	out, err := Settler{}.Apply(testCatalog(), []Op{
		{Kind: OpDelete, ProductID: 102, VariantID: "sm"},
	})
	require.NoError(t, err)
	require.Len(t, out[1].Variants, 1)
	assert.Equal(t, "md", out[1].Variants[0].ID)
}

func TestApplyProductDeleteWinsOverVariantDelete(t *testing.T) {
	// whole-product delete and a variant delete for the same product in one
	// batch: the product must be gone regardless of op order
	out, err := Settler{}.Apply(testCatalog(), []Op{
		{Kind: OpDelete, ProductID: 102},
		{Kind: OpDelete, ProductID: 102, VariantID: "md"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, p := range out {
		assert.NotEqual(t, int64(102), p.ID)
	}
}

func TestTolerantModeIgnoresUnknownIDs(t *testing.T) {
	out, err := Settler{}.Apply(testCatalog(), []Op{
		{Kind: OpDecrement, ProductID: 999, Qty: 1},
		{Kind: OpDecrement, ProductID: 102, VariantID: "xl", Qty: 1},
		{Kind: OpDecrement, ProductID: 103, Qty: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), out[2].Stock)
}

func TestTolerantModeAllowsOversell(t *testing.T) {
	out, err := Settler{}.Apply(testCatalog(), []Op{
		{Kind: OpDecrement, ProductID: 103, Qty: 25},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-5), out[2].Stock)
}

func TestStrictModeRejectsUnknownProduct(t *testing.T) {
	_, err := Settler{Strict: true}.Apply(testCatalog(), []Op{
		{Kind: OpDecrement, ProductID: 999, Qty: 1},
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestStrictModeRejectsUnknownVariant(t *testing.T) {
	_, err := Settler{Strict: true}.Apply(testCatalog(), []Op{
		{Kind: OpDecrement, ProductID: 102, VariantID: "xl", Qty: 1},
	})
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = Settler{Strict: true}.Apply(testCatalog(), []Op{
		{Kind: OpDelete, ProductID: 102, VariantID: "xl"},
	})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestStrictModeRejectsOversell(t *testing.T) {
	_, err := Settler{Strict: true}.Apply(testCatalog(), []Op{
		{Kind: OpDecrement, ProductID: 103, Qty: 25},
	})
	assert.ErrorIs(t, err, ErrInsufficient)
}

func TestDecrementOps(t *testing.T) {
	items := []domain.CartItem{
		{Product: domain.Product{ID: 101}, Quantity: 2},
		{Product: domain.Product{ID: 102}, Quantity: 1, Variant: &domain.Variant{ID: "md"}},
	}
	ops := DecrementOps(items)
	require.Len(t, ops, 2)
	assert.Equal(t, Op{Kind: OpDecrement, ProductID: 101, Qty: 2}, ops[0])
	assert.Equal(t, Op{Kind: OpDecrement, ProductID: 102, VariantID: "md", Qty: 1}, ops[1])
}
