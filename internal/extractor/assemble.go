package extractor

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"promowatch/internal/model"
)

// TimestampLayout is RFC 3339 with the offset always written numerically,
// so UTC renders as +00:00. Fractional seconds are appended by
// fractionLayout.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// fractionLayout picks 0, 3, 6 or 9 fractional digits, the fewest that keep
// the instant exact.
func fractionLayout(t time.Time) string {
	ns := t.Nanosecond()
	switch {
	case ns == 0:
		return TimestampLayout
	case ns%1_000_000 == 0:
		return "2006-01-02T15:04:05.000-07:00"
	case ns%1_000 == 0:
		return "2006-01-02T15:04:05.000000-07:00"
	default:
		return "2006-01-02T15:04:05.000000000-07:00"
	}
}

// Zone is a fixed offset a snapshot timestamp is rendered in.
type Zone struct {
	Name          string
	OffsetSeconds int
}

var (
	UTC       = Zone{Name: "UTC", OffsetSeconds: 0}
	GMTMinus6 = Zone{Name: "GMT-6", OffsetSeconds: -6 * 60 * 60}
)

const maxOffset = 24 * 60 * 60

// RenderInstant formats one instant once per zone, in zone order.
func RenderInstant(t time.Time, zones ...Zone) ([]string, error) {
	out := make([]string, len(zones))
	for i, z := range zones {
		if z.OffsetSeconds <= -maxOffset || z.OffsetSeconds >= maxOffset {
			return nil, &TimezoneError{Zone: z.Name, OffsetSeconds: z.OffsetSeconds}
		}
		out[i] = t.In(time.FixedZone(z.Name, z.OffsetSeconds)).Format(fractionLayout(t))
	}
	return out, nil
}

// Assembler builds a Product from navigated payload fields.
type Assembler struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// OnSkippedPromotion, if set, is called for every dropped promotion.
	OnSkippedPromotion SkipFunc
}

// Extract parses a located payload and assembles the product it describes.
func (a Assembler) Extract(payload string) (model.Product, error) {
	if !gjson.Valid(payload) {
		return model.Product{}, fmt.Errorf("%w: invalid JSON", ErrMalformedPayload)
	}
	fields, err := Navigate(gjson.Parse(payload))
	if err != nil {
		return model.Product{}, err
	}
	return a.Assemble(fields)
}

// Assemble coerces the top-level product fields and fails on the first one
// that is missing or malformed. Promotions are reconciled best-effort.
func (a Assembler) Assemble(f NavigatedFields) (model.Product, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	stamps, err := RenderInstant(now(), UTC, GMTMinus6)
	if err != nil {
		return model.Product{}, err
	}

	r := &fieldReader{}
	p := model.Product{
		ProductID:             read[uint64](r, f.Meta, "productId"),
		Title:                 read[string](r, f.Meta, "title"),
		Brand:                 read[string](r, f.Meta, "brand"),
		LastModifiedTime:      read[string](r, f.Meta, "lastmodifiedTime"),
		CreationDate:          read[string](r, f.Meta, "creationDate"),
		MaxPromoPrice:         read[float64](r, f.Meta, "maximumPromoPrice"),
		MinPromoPrice:         read[float64](r, f.Meta, "minimumPromoPrice"),
		MaxListPrice:          read[float64](r, f.Meta, "maximumListPrice"),
		MinListPrice:          read[float64](r, f.Meta, "minimumListPrice"),
		LastModifiedByWhom:    read[string](r, f.Meta, "lastmodifiedByWhom"),
		RatingAverage:         read[float64](r, f.Ratings, "productAvgRating"),
		RatingCount:           read[uint](r, f.Ratings, "productRatingCount"),
		Color:                 read[string](r, f.Variant, "color"),
		DiscountPercentage:    read[float64](r, f.Prices, "discountPercentage"),
		PromoPrice:            read[float64](r, f.Prices, "promoPrice"),
		SalePrice:             read[float64](r, f.Prices, "salePrice"),
		ListPrice:             read[float64](r, f.Prices, "listPrice"),
		SortPrice:             read[float64](r, f.Prices, "sortPrice"),
		TimeRecordedUTC:       stamps[0],
		TimeRecordedGMTMinus6: stamps[1],
	}
	if r.err != nil {
		return model.Product{}, r.err
	}
	p.Promotions = ReconcilePromotions(f.Promotions, a.OnSkippedPromotion)
	return p, nil
}

// ExtractProduct runs the default Assembler over payload.
func ExtractProduct(payload string) (model.Product, error) {
	return Assembler{}.Extract(payload)
}
