package helpers

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yigit/kursverwaltung/internal/app/models"
)

// Placeholder is shown for missing values
const Placeholder = "-"

var germanPrinter = message.NewPrinter(language.German)

// FormatEUR formats an amount the way de-DE currency formatting does: "1.234,50 €"
func FormatEUR(value float64) string {
	return germanPrinter.Sprintf("%.2f", value) + " €"
}

// FormatPrice formats an optional price, "-" when unset
func FormatPrice(value *float64) string {
	if value == nil {
		return Placeholder
	}
	return FormatEUR(*value)
}

// FormatDate renders a date field as dd.MM.yyyy. Empty values become "-",
// unparsable values are returned unchanged.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Placeholder
	}
	t, ok := models.ParseDate(value)
	if !ok {
		return value
	}
	return t.Format("02.01.2006")
}

// OrPlaceholder returns "-" for blank strings
func OrPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}
