package dto

import (
	"strings"

	"github.com/yigit/kursverwaltung/internal/app/models"
)

// DozentRequest represents dozent create and update data
type DozentRequest struct {
	Name       string `json:"name" form:"name" validate:"required,max=200" example:"Dr. Anna Schmidt"`
	Email      string `json:"email" form:"email" validate:"required,email" example:"anna.schmidt@example.de"`
	Telefon    string `json:"telefon" form:"telefon" validate:"max=50" example:"+49 30 1234567"`
	Fachgebiet string `json:"fachgebiet" form:"fachgebiet" validate:"max=200" example:"Informatik"`
}

// Normalize trims all values
func (r *DozentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Telefon = strings.TrimSpace(r.Telefon)
	r.Fachgebiet = strings.TrimSpace(r.Fachgebiet)
}

// NewDozentRequest prefills a request from a stored record
func NewDozentRequest(d *models.Dozent) DozentRequest {
	if d == nil {
		return DozentRequest{}
	}
	return DozentRequest{
		Name:       d.Fields.Name,
		Email:      d.Fields.Email,
		Telefon:    d.Fields.Telefon,
		Fachgebiet: d.Fields.Fachgebiet,
	}
}
