package review

import "promowatch/internal/model"

const (
	LongTermPD    = "long-term PD promotion"
	HighDiscount  = "high discount-amount promotion"
	longTermAfter = 9
	// discountAmount is compared as-is; discountUnit is not consulted.
	highDiscountAbove = 10.0
)

// Promotions returns the flags raised by p's promotions, in promotion order
// and rule order within each promotion. A promotion can raise both flags.
func Promotions(p model.Product) []string {
	var flags []string
	for _, promo := range p.Promotions {
		if promo.Months > longTermAfter && promo.PromoType == "PD" {
			flags = append(flags, LongTermPD)
		}
		if promo.DiscountAmount > highDiscountAbove {
			flags = append(flags, HighDiscount)
		}
	}
	return flags
}
