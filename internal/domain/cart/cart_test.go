package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAggregate_ExcludesUnresolvedVariants(t *testing.T) {
	lines := []Line{
		{ID: "l1", Variant: &Variant{ID: "A", ProductName: "Áo sơ mi", Price: decimal.NewFromInt(200000)}, Quantity: 2, Size: "M"},
		{ID: "l2", Variant: nil, Quantity: 1, Size: "L"},
	}

	s := Aggregate(lines)

	require.True(t, s.TotalPrice.Equal(decimal.NewFromInt(400000)))
	require.Equal(t, int64(2), s.TotalQuantity)
	require.Len(t, s.Items, 1)
	require.Equal(t, "A", s.Items[0].Variant.ID)
	require.Len(t, s.Unavailable, 1)
	require.Equal(t, "l2", s.Unavailable[0].ID)
}

func TestAggregate_VariantWithoutIDIsUnavailable(t *testing.T) {
	s := Aggregate([]Line{
		{ID: "l1", Variant: &Variant{Price: decimal.NewFromInt(50000)}, Quantity: 3},
	})

	require.True(t, s.IsEmpty())
	require.True(t, s.TotalPrice.IsZero())
	require.Zero(t, s.TotalQuantity)
}

func TestAggregate_EmptyCart(t *testing.T) {
	s := Aggregate(nil)

	require.True(t, s.IsEmpty())
	require.NotNil(t, s.Items)
	require.NotNil(t, s.Unavailable)
	require.True(t, s.TotalPrice.IsZero())
}

func TestAggregate_MultipleLines(t *testing.T) {
	lines := []Line{
		{ID: "l1", Variant: &Variant{ID: "A", Price: decimal.NewFromInt(150000)}, Quantity: 1},
		{ID: "l2", Variant: &Variant{ID: "B", Price: decimal.NewFromInt(99000)}, Quantity: 3},
		{ID: "l3", Variant: &Variant{ID: "A", Price: decimal.NewFromInt(150000)}, Quantity: 2, Size: "XL"},
	}

	s := Aggregate(lines)

	require.Equal(t, int64(6), s.TotalQuantity)
	require.True(t, s.TotalPrice.Equal(decimal.NewFromInt(747000)), s.TotalPrice.String())
	require.Len(t, s.Items, 3)
}
