package model

import "math"

// PriceTolerance is the distance, in currency units, above which a
// promotion's stated item price is considered different from
// months * monthly price.
const PriceTolerance = 9.0

// Promotion is an installment-plan (EMI) offer attached to a variant.
// The last three fields are derived by Reconcile and are never read from
// the retailer payload.
type Promotion struct {
	Months            uint    `json:"months"`
	PromoType         string  `json:"promoType"`
	PromoDesc         string  `json:"promoDesc"`
	MinPurchaseAmount uint    `json:"minPurchaseAmount"`
	MinPurchaseUnit   uint    `json:"minPurchaseUnit"`
	DiscountUnit      uint    `json:"discountUnit"`
	DiscountAmount    float64 `json:"discountAmount"`
	PromoCode         uint64  `json:"promoCode"`
	ItemPrice         float64 `json:"itemPrice"`
	MonthlyPrice      float64 `json:"monthlyPrice"`

	FinalPrice         float64 `json:"final_price"`
	FinalPriceDistance float64 `json:"final_price_distance"`
	DifferentPrice     bool    `json:"different_price"`
}

// Reconcile returns p with its derived fields recomputed from the raw ones.
func Reconcile(p Promotion) Promotion {
	p.FinalPrice = float64(p.Months) * p.MonthlyPrice
	p.FinalPriceDistance = math.Abs(p.ItemPrice - p.FinalPrice)
	p.DifferentPrice = p.FinalPriceDistance > PriceTolerance
	return p
}
