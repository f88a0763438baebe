package extractor

import (
	"fmt"

	"github.com/tidwall/gjson"

	"promowatch/internal/model"
)

// SkipFunc is told about every promotion entry that was dropped.
type SkipFunc func(index int, err error)

// ReconcilePromotions coerces every entry of the liverpoolPromotionsEMI
// array and recomputes its derived prices. Entries that fail coercion are
// left out of the result; the rest keep their source order.
func ReconcilePromotions(entries gjson.Result, onSkip SkipFunc) []model.Promotion {
	items := entries.Array()
	out := make([]model.Promotion, 0, len(items))
	for i, entry := range items {
		p, err := coercePromotion(entry, i)
		if err != nil {
			if onSkip != nil {
				onSkip(i, err)
			}
			continue
		}
		out = append(out, model.Reconcile(p))
	}
	return out
}

func coercePromotion(entry gjson.Result, index int) (model.Promotion, error) {
	if !entry.IsObject() {
		return model.Promotion{}, &ExtractionError{
			Key:   fmt.Sprintf("liverpoolPromotionsEMI[%d]", index),
			Found: entry.Type.String(),
		}
	}

	r := &fieldReader{}
	p := model.Promotion{
		Months:            read[uint](r, entry, "months"),
		PromoType:         read[string](r, entry, "promoType"),
		PromoDesc:         read[string](r, entry, "promoDesc"),
		MinPurchaseAmount: read[uint](r, entry, "minPurchaseAmount"),
		MinPurchaseUnit:   read[uint](r, entry, "minPurchaseUnit"),
		DiscountUnit:      read[uint](r, entry, "discountUnit"),
		DiscountAmount:    read[float64](r, entry, "discountAmount"),
		PromoCode:         read[uint64](r, entry, "promoCode"),
		ItemPrice:         read[float64](r, entry, "itemPrice"),
		MonthlyPrice:      read[float64](r, entry, "monthlyPrice"),
	}
	if r.err != nil {
		return model.Promotion{}, r.err
	}
	return p, nil
}
