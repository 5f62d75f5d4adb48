package dto

import (
	"strings"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
)

// AnmeldungRequest represents enrollment create and update data. The
// referenced records are given by id.
type AnmeldungRequest struct {
	TeilnehmerID string `json:"teilnehmer_id" form:"teilnehmer_id" validate:"required,recordid" example:"65a1b2c3d4e5f60718293a4b"`
	KursID       string `json:"kurs_id" form:"kurs_id" validate:"required,recordid" example:"65a1b2c3d4e5f60718293a4c"`
	Anmeldedatum string `json:"anmeldedatum" form:"anmeldedatum" validate:"omitempty,isodate" example:"2024-02-10"`
	Bezahlt      bool   `json:"bezahlt" form:"bezahlt"`
}

// Normalize trims all values
func (r *AnmeldungRequest) Normalize() {
	r.TeilnehmerID = strings.TrimSpace(r.TeilnehmerID)
	r.KursID = strings.TrimSpace(r.KursID)
	r.Anmeldedatum = strings.TrimSpace(r.Anmeldedatum)
}

// NewAnmeldungRequest prefills a request from a stored record
func NewAnmeldungRequest(a *models.Anmeldung) AnmeldungRequest {
	if a == nil {
		return AnmeldungRequest{}
	}
	return AnmeldungRequest{
		TeilnehmerID: livingapps.ExtractRecordID(a.Fields.Teilnehmer),
		KursID:       livingapps.ExtractRecordID(a.Fields.Kurs),
		Anmeldedatum: dateOnly(a.Fields.Anmeldedatum),
		Bezahlt:      a.Fields.Bezahlt,
	}
}

// BezahltRequest sets the paid flag of an enrollment. Without a value the
// flag is toggled.
type BezahltRequest struct {
	Bezahlt *bool `json:"bezahlt" example:"true"`
}
