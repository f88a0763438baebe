package notify

import (
	"fmt"
	"strings"

	"promowatch/internal/model"
)

const Subject = "Liverpool | Bose QC Ultra | Promotions"

// Body is the alert text for one review flag.
func Body(flag, url string, p model.Product, summary string) string {
	var sb strings.Builder

	sb.WriteString(flag + "\n\n")
	sb.WriteString("Visit the web page: " + url + "\n")

	if digest := Digest(p); digest != "" {
		sb.WriteString("\n" + digest)
	}
	if summary != "" {
		sb.WriteString("\n" + strings.TrimSpace(summary) + "\n")
	}
	return sb.String()
}

// Digest renders the snapshot prices and its promotions as plain text.
func Digest(p model.Product) string {
	if p.ProductID == 0 && p.Title == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- Snapshot ---\n")
	if p.Title != "" {
		sb.WriteString("Product: " + p.Title + "\n")
	}
	sb.WriteString(fmt.Sprintf("Product ID: %d\n", p.ProductID))
	if p.TimeRecordedGMTMinus6 != "" {
		sb.WriteString("Recorded: " + p.TimeRecordedGMTMinus6 + "\n")
	}
	if p.ListPrice > 0 {
		sb.WriteString(fmt.Sprintf("List price: %.2f\n", p.ListPrice))
	}
	if p.PromoPrice > 0 {
		sb.WriteString(fmt.Sprintf("Promo price: %.2f\n", p.PromoPrice))
	}
	if p.DiscountPercentage > 0 {
		sb.WriteString(fmt.Sprintf("Discount: %g%%\n", p.DiscountPercentage))
	}

	for _, promo := range p.Promotions {
		line := fmt.Sprintf("- %s %d months x %.2f = %.2f", promo.PromoType, promo.Months, promo.MonthlyPrice, promo.FinalPrice)
		if promo.DiscountAmount > 0 {
			line += fmt.Sprintf(" (discount %g)", promo.DiscountAmount)
		}
		if promo.DifferentPrice {
			line += fmt.Sprintf(" [differs from %.2f by %.2f]", promo.ItemPrice, promo.FinalPriceDistance)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
