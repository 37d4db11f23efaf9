package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderSpec(spec domain.OrderSpec) string {
	var b strings.Builder
	b.WriteString("Order: ")
	b.WriteString(spec.Name)
	b.WriteString(fmt.Sprintf("\nDistance: %g km\n\nProducts:\n", spec.DistanceKM))
	for _, p := range spec.Products {
		b.WriteString("  - ")
		b.WriteString(p.Name())
		b.WriteString("  ")
		b.WriteString(p.Price().Label())
		b.WriteString("\n")
	}
	return b.String()
}

// renderQuotes draws one line per quote; the line at cursor gets a marker.
func renderQuotes(quotes []usecase.ShippingQuote, cursor int) string {
	if len(quotes) == 0 {
		return "(no shipping methods)\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %-9s %12s %14s  %s\n", "METHOD", "SHIPPING", "TOTAL", "DELIVERY"))
	for i, q := range quotes {
		mark := " "
		if i == cursor {
			mark = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-9s %12s %14s  %s\n",
			mark, q.Kind, q.ShippingCost.Label(), q.TotalCost.Label(), q.DeliveryTime))
	}
	return b.String()
}

func renderRecord(rec domain.OrderRecord) string {
	return fmt.Sprintf("Saved %s\n%s | total %s | %s",
		clampString(rec.ID, 8), rec.ShippingMethod, rec.TotalCost.Label(), rec.DeliveryTime)
}
