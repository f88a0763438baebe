package extractor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"promowatch/internal/model"
)

func TestReconcileScenarios(t *testing.T) {
	entries := gjson.Parse(encode(t, []any{
		promotionFixture("24", "PD", "0", "1080.0", "45.0"),
		promotionFixture("10", "MSI", "0", "520.0", "50.0"),
	}))

	got := ReconcilePromotions(entries, nil)
	require.Len(t, got, 2)

	require.Equal(t, 1080.0, got[0].FinalPrice)
	require.Equal(t, 0.0, got[0].FinalPriceDistance)
	require.False(t, got[0].DifferentPrice)

	require.Equal(t, 500.0, got[1].FinalPrice)
	require.Equal(t, 20.0, got[1].FinalPriceDistance)
	require.True(t, got[1].DifferentPrice)

	want := model.Promotion{
		Months:             24,
		PromoType:          "PD",
		PromoDesc:          "24 MSI",
		MinPurchaseAmount:  0,
		MinPurchaseUnit:    1,
		DiscountUnit:       2,
		DiscountAmount:     0,
		PromoCode:          5502,
		ItemPrice:          1080,
		MonthlyPrice:       45,
		FinalPrice:         1080,
		FinalPriceDistance: 0,
		DifferentPrice:     false,
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("promotion mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileDerivedFields(t *testing.T) {
	cases := []struct {
		months  string
		monthly string
		item    string
	}{
		{"3", "333.33", "999.99"},
		{"6", "1666.5", "9999"},
		{"18", "0.1", "1.8"},
		{"12", "840.75", "10000"},
		{"1", "9.5", "0"},
	}

	for _, test := range cases {
		entries := gjson.Parse(encode(t, []any{promotionFixture(test.months, "MSI", "0", test.item, test.monthly)}))
		got := ReconcilePromotions(entries, nil)
		require.Len(t, got, 1)

		p := got[0]
		require.Equal(t, float64(p.Months)*p.MonthlyPrice, p.FinalPrice)
		require.Equal(t, p.FinalPriceDistance > 9.0, p.DifferentPrice)
	}
}

func TestReconcileSkipsMalformedEntries(t *testing.T) {
	bad := promotionFixture("12", "PD", "0", "1200", "100")
	bad["monthlyPrice"] = "cien"
	missing := promotionFixture("6", "PD", "0", "600", "100")
	delete(missing, "promoCode")

	entries := gjson.Parse(encode(t, []any{
		promotionFixture("24", "PD", "0", "1080.0", "45.0"),
		bad,
		promotionFixture("10", "MSI", "0", "520.0", "50.0"),
		missing,
		"not an object",
	}))

	var skipped []int
	var fields []string
	got := ReconcilePromotions(entries, func(index int, err error) {
		skipped = append(skipped, index)
		fields = append(fields, FieldName(err))
	})

	require.Len(t, got, 2)
	require.Equal(t, uint(24), got[0].Months)
	require.Equal(t, uint(10), got[1].Months)
	require.Equal(t, []int{1, 3, 4}, skipped)
	require.Equal(t, []string{"monthlyPrice", "promoCode", "liverpoolPromotionsEMI[4]"}, fields)
}

func TestReconcileIgnoresSuppliedDerivedFields(t *testing.T) {
	entry := promotionFixture("10", "MSI", "0", "520.0", "50.0")
	entry["final_price"] = "520.0"
	entry["different_price"] = false

	got := ReconcilePromotions(gjson.Parse(encode(t, []any{entry})), nil)
	require.Len(t, got, 1)
	require.Equal(t, 500.0, got[0].FinalPrice)
	require.True(t, got[0].DifferentPrice)
}
