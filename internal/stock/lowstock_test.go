package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mokha/internal/domain"
)

func TestScanProductQualification(t *testing.T) {
	cases := []struct {
		name      string
		stock     int64
		threshold *int64
		want      bool
	}{
		{"no threshold", 1, nil, false},
		{"above threshold", 11, i64(10), false},
		{"at threshold", 10, i64(10), true},
		{"below threshold", 3, i64(10), true},
		{"zero stock", 0, i64(10), false},
		{"negative stock", -2, i64(10), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Scan([]domain.Product{{ID: 1, Stock: tc.stock, LowStockThreshold: tc.threshold}})
			assert.Equal(t, tc.want, len(got) == 1)
		})
	}
}

func TestScanVariantedProductUsesVariantLevels(t *testing.T) {
	catalog := []domain.Product{{
		ID:    102,
		Name:  domain.LocalizedString{EN: "Cappuccino"},
		Stock: 0, // ignored for varianted products
		Variants: []domain.Variant{
			{ID: "sm", Name: domain.LocalizedString{EN: "Small"}, Stock: 30},
			{ID: "md", Name: domain.LocalizedString{EN: "Medium"}, Stock: 4, LowStockThreshold: i64(5)},
			{ID: "lg", Name: domain.LocalizedString{EN: "Large"}, Stock: 0, LowStockThreshold: i64(5)},
		},
	}}
	got := Scan(catalog)
	require.Len(t, got, 1)
	assert.Equal(t, "variant-102-md", got[0].UniqueID)
	assert.Equal(t, int64(102), got[0].ProductID)
	assert.Equal(t, "md", got[0].VariantID)
	require.NotNil(t, got[0].VariantName)
	assert.Equal(t, "Medium", got[0].VariantName.EN)
	assert.Equal(t, int64(4), got[0].RemainingStock)
	assert.Equal(t, int64(5), got[0].Threshold)
}

func TestScanSimpleProductID(t *testing.T) {
	got := Scan([]domain.Product{{ID: 301, Stock: 5, LowStockThreshold: i64(5)}})
	require.Len(t, got, 1)
	assert.Equal(t, "product-301", got[0].UniqueID)
	assert.Empty(t, got[0].VariantID)
	assert.Nil(t, got[0].VariantName)
}
