package model

// Product is one snapshot of the tracked product, assembled once per run.
// Values are built in a single composite literal by the extractor and passed
// around by value afterwards; nothing in the pipeline writes to a Product
// after it has been returned.
type Product struct {
	ProductID             uint64      `json:"product_id"`
	Title                 string      `json:"title"`
	Brand                 string      `json:"brand"`
	Color                 string      `json:"color"`
	TimeRecordedUTC       string      `json:"time_recorded_utc"`
	TimeRecordedGMTMinus6 string      `json:"time_recorded_gmt_minus_6"`
	LastModifiedTime      string      `json:"last_modified_time"`
	CreationDate          string      `json:"creation_date"`
	MaxPromoPrice         float64     `json:"max_promo_price"`
	MinPromoPrice         float64     `json:"min_promo_price"`
	MaxListPrice          float64     `json:"max_list_price"`
	MinListPrice          float64     `json:"min_list_price"`
	DiscountPercentage    float64     `json:"discount_percentage"`
	PromoPrice            float64     `json:"promo_price"`
	SalePrice             float64     `json:"sale_price"`
	ListPrice             float64     `json:"list_price"`
	SortPrice             float64     `json:"sort_price"`
	LastModifiedByWhom    string      `json:"last_modified_by_whom"`
	RatingAverage         float64     `json:"rating_average"`
	RatingCount           uint        `json:"rating_count"`
	Promotions            []Promotion `json:"promotions"`
}
