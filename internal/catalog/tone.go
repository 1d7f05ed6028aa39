package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tone is the display category a status maps to.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneInfo     Tone = "info"
	ToneAccent   Tone = "accent"
	ToneWarning  Tone = "warning"
	ToneDanger   Tone = "danger"
	ToneNeutral  Tone = "neutral"
)

var (
	typeTones = map[string]Tone{
		"sell":   TonePositive,
		"buy":    ToneInfo,
		"barter": ToneAccent,
	}
	availabilityTones = map[string]Tone{
		"available":   TonePositive,
		"busy":        ToneDanger,
		"maintenance": ToneWarning,
	}
	severityTones = map[string]Tone{
		"low":      TonePositive,
		"moderate": ToneWarning,
		"high":     ToneDanger,
	}
	priorityTones = map[string]Tone{
		"high":   ToneDanger,
		"medium": ToneWarning,
		"low":    TonePositive,
	}
)

func lookup(table map[string]Tone, key string) Tone {
	if t, ok := table[key]; ok {
		return t
	}
	return ToneNeutral
}

// TypeTone maps a marketplace listing type.
func TypeTone(listingType string) Tone { return lookup(typeTones, listingType) }

// AvailabilityTone maps a machine availability state.
func AvailabilityTone(status string) Tone { return lookup(availabilityTones, status) }

// SeverityTone maps a diagnosis severity, ignoring case.
func SeverityTone(severity string) Tone {
	return lookup(severityTones, strings.ToLower(severity))
}

// PriorityTone maps a farming tip priority.
func PriorityTone(priority string) Tone { return lookup(priorityTones, priority) }

// Bookable reports whether a machine in the given state can be booked.
func Bookable(availability string) bool {
	return availability == "available"
}

// PriceLabel renders a listing price with thousands grouping. Barter listings
// have no price.
func PriceLabel(listingType string, price float64) string {
	if listingType == "barter" {
		return "Exchange"
	}
	p := message.NewPrinter(language.English)
	if price == float64(int64(price)) {
		return p.Sprintf("₹%d", int64(price))
	}
	return p.Sprintf("₹%.2f", price)
}
