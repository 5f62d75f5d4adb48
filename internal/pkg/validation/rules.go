package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
)

// Custom validation tags
const (
	// TagISODate accepts dates in the YYYY-MM-DD layout
	TagISODate = "isodate"
	// TagRecordID accepts 24 character hex record ids
	TagRecordID = "recordid"
)

func isoDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	_, ok := models.ParseDate(value)
	return ok && len(strings.TrimSpace(value)) >= len(models.DateLayout)
}

func recordID(fl validator.FieldLevel) bool {
	return livingapps.IsRecordID(fl.Field().String())
}

// messages holds the German message per tag. %s is replaced by the tag parameter.
var messages = map[string]string{
	"required":  "Pflichtfeld",
	"email":     "Bitte eine gültige E-Mail-Adresse angeben",
	"min":       "Muss mindestens %s sein",
	"gte":       "Darf nicht kleiner als %s sein",
	"max":       "Darf höchstens %s Zeichen lang sein",
	TagISODate:  "Bitte ein Datum im Format JJJJ-MM-TT angeben",
	TagRecordID: "Ungültige Auswahl",
}
