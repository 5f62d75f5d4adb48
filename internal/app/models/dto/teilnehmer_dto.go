package dto

import (
	"strings"

	"github.com/yigit/kursverwaltung/internal/app/models"
)

// TeilnehmerRequest represents participant create and update data
type TeilnehmerRequest struct {
	Name         string `json:"name" form:"name" validate:"required,max=200" example:"Max Mustermann"`
	Email        string `json:"email" form:"email" validate:"required,email" example:"max@example.de"`
	Telefon      string `json:"telefon" form:"telefon" validate:"max=50"`
	Geburtsdatum string `json:"geburtsdatum" form:"geburtsdatum" validate:"omitempty,isodate" example:"1990-05-17"`
}

// Normalize trims all values
func (r *TeilnehmerRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Telefon = strings.TrimSpace(r.Telefon)
	r.Geburtsdatum = strings.TrimSpace(r.Geburtsdatum)
}

// NewTeilnehmerRequest prefills a request from a stored record
func NewTeilnehmerRequest(t *models.Teilnehmer) TeilnehmerRequest {
	if t == nil {
		return TeilnehmerRequest{}
	}
	return TeilnehmerRequest{
		Name:         t.Fields.Name,
		Email:        t.Fields.Email,
		Telefon:      t.Fields.Telefon,
		Geburtsdatum: dateOnly(t.Fields.Geburtsdatum),
	}
}

// dateOnly cuts a time part so the value fits a date input
func dateOnly(value string) string {
	if _, ok := models.ParseDate(value); ok {
		return value[:len(models.DateLayout)]
	}
	return value
}
