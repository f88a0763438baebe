package extractor

import (
	"encoding/json"
	"testing"
)

func promotionFixture(months, promoType, discount, itemPrice, monthlyPrice string) map[string]any {
	return map[string]any{
		"months":            months,
		"promoType":         promoType,
		"promoDesc":         months + " MSI",
		"minPurchaseAmount": "0",
		"minPurchaseUnit":   "1",
		"discountUnit":      "2",
		"discountAmount":    discount,
		"promoCode":         "5502",
		"itemPrice":         itemPrice,
		"monthlyPrice":      monthlyPrice,
	}
}

// payloadFixture mirrors the shape of the __NEXT_DATA__ blob of a product page.
func payloadFixture() map[string]any {
	return map[string]any{
		"props": map[string]any{"pageProps": map[string]any{}},
		"query": map[string]any{
			"data": map[string]any{
				"mainContent": map[string]any{
					"records": []any{
						map[string]any{
							"allMeta": map[string]any{
								"productId":          "1150870956",
								"title":              "Audífonos Over-Ear Bose QuietComfort Ultra",
								"brand":              "BOSE",
								"lastmodifiedTime":   "2024-05-01 10:15:00",
								"creationDate":       "2023-10-02",
								"maximumPromoPrice":  7999.0,
								"minimumPromoPrice":  7499.0,
								"maximumListPrice":   9499.0,
								"minimumListPrice":   9499.0,
								"lastmodifiedByWhom": "catalog-sync",
								"ratingInfo": map[string]any{
									"productAvgRating":   "4.7",
									"productRatingCount": "128",
								},
								"variants": []any{
									map[string]any{
										"color": "Sandstone",
										"prices": map[string]any{
											"discountPercentage": "16",
											"promoPrice":         "7999",
											"salePrice":          "7999",
											"listPrice":          "9499",
											"sortPrice":          "7999",
										},
										"liverpoolPromotionsEMI": []any{
											promotionFixture("24", "PD", "0", "1080.0", "45.0"),
											promotionFixture("10", "MSI", "0", "520.0", "50.0"),
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func encode(t testing.TB, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func path(root map[string]any, keys ...string) map[string]any {
	cur := root
	for _, k := range keys {
		switch v := cur[k].(type) {
		case map[string]any:
			cur = v
		case []any:
			cur = v[0].(map[string]any)
		}
	}
	return cur
}

func metaOf(root map[string]any) map[string]any {
	return path(root, "query", "data", "mainContent", "records", "allMeta")
}

func variantOf(root map[string]any) map[string]any {
	return path(metaOf(root), "variants")
}
