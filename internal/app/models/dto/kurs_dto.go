package dto

import (
	"strconv"
	"strings"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
)

// KursRequest represents course create and update data. Dozent and Raum are
// given by record id.
type KursRequest struct {
	Titel         string   `json:"titel" validate:"required,max=200" example:"Einführung in Go"`
	Beschreibung  string   `json:"beschreibung" validate:"max=5000"`
	Startdatum    string   `json:"startdatum" validate:"required,isodate" example:"2024-03-01"`
	Enddatum      string   `json:"enddatum" validate:"required,isodate" example:"2024-03-05"`
	MaxTeilnehmer int      `json:"max_teilnehmer" validate:"min=1" example:"12"`
	Preis         *float64 `json:"preis" validate:"required,gte=0" example:"490"`
	DozentID      string   `json:"dozent_id" validate:"required,recordid" example:"65a1b2c3d4e5f60718293a4b"`
	RaumID        string   `json:"raum_id" validate:"required,recordid" example:"65a1b2c3d4e5f60718293a4c"`
}

// Normalize trims all values
func (r *KursRequest) Normalize() {
	r.Titel = strings.TrimSpace(r.Titel)
	r.Beschreibung = strings.TrimSpace(r.Beschreibung)
	r.Startdatum = strings.TrimSpace(r.Startdatum)
	r.Enddatum = strings.TrimSpace(r.Enddatum)
	r.DozentID = strings.TrimSpace(r.DozentID)
	r.RaumID = strings.TrimSpace(r.RaumID)
}

// KursForm is the raw HTML form input of the course dialog
type KursForm struct {
	Titel         string `form:"titel"`
	Beschreibung  string `form:"beschreibung"`
	Startdatum    string `form:"startdatum"`
	Enddatum      string `form:"enddatum"`
	MaxTeilnehmer string `form:"max_teilnehmer"`
	Preis         string `form:"preis"`
	DozentID      string `form:"dozent_id"`
	RaumID        string `form:"raum_id"`
}

// NewKursForm prefills the dialog from a stored record
func NewKursForm(k *models.Kurs) KursForm {
	if k == nil {
		return KursForm{}
	}
	form := KursForm{
		Titel:        k.Fields.Titel,
		Beschreibung: k.Fields.Beschreibung,
		Startdatum:   dateOnly(k.Fields.Startdatum),
		Enddatum:     dateOnly(k.Fields.Enddatum),
		DozentID:     livingapps.ExtractRecordID(k.Fields.Dozent),
		RaumID:       livingapps.ExtractRecordID(k.Fields.Raum),
	}
	if k.Fields.MaxTeilnehmer != 0 {
		form.MaxTeilnehmer = strconv.Itoa(int(k.Fields.MaxTeilnehmer))
	}
	if k.Fields.Preis != nil {
		form.Preis = strconv.FormatFloat(*k.Fields.Preis, 'f', -1, 64)
	}
	return form
}

// Request converts the form. Values that are not numbers are reported per field.
func (f KursForm) Request() (KursRequest, map[string]string) {
	errs := map[string]string{}
	req := KursRequest{
		Titel:        f.Titel,
		Beschreibung: f.Beschreibung,
		Startdatum:   f.Startdatum,
		Enddatum:     f.Enddatum,
		DozentID:     f.DozentID,
		RaumID:       f.RaumID,
	}
	req.MaxTeilnehmer = parseIntField(errs, "max_teilnehmer", f.MaxTeilnehmer)
	req.Preis = parseFloatField(errs, "preis", f.Preis)
	return req, errs
}

// parseIntField parses an optional integer; blank is 0
func parseIntField(errs map[string]string, field, value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		errs[field] = "Bitte eine ganze Zahl angeben"
		return 0
	}
	return n
}

// parseFloatField parses an optional decimal, accepting a decimal comma; blank is nil
func parseFloatField(errs map[string]string, field, value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		errs[field] = "Bitte eine Zahl angeben"
		return nil
	}
	return &n
}
