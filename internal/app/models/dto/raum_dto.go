package dto

import (
	"strconv"
	"strings"

	"github.com/yigit/kursverwaltung/internal/app/models"
)

// RaumRequest represents room create and update data
type RaumRequest struct {
	Raumname   string `json:"raumname" validate:"required,max=200" example:"Raum 101"`
	Gebaeude   string `json:"gebaeude" validate:"required,max=200" example:"Hauptgebäude"`
	Kapazitaet int    `json:"kapazitaet" validate:"min=1" example:"30"`
}

// Normalize trims all values
func (r *RaumRequest) Normalize() {
	r.Raumname = strings.TrimSpace(r.Raumname)
	r.Gebaeude = strings.TrimSpace(r.Gebaeude)
}

// RaumForm is the raw HTML form input of the room dialog
type RaumForm struct {
	Raumname   string `form:"raumname"`
	Gebaeude   string `form:"gebaeude"`
	Kapazitaet string `form:"kapazitaet"`
}

// NewRaumForm prefills the dialog from a stored record
func NewRaumForm(r *models.Raum) RaumForm {
	if r == nil {
		return RaumForm{}
	}
	form := RaumForm{Raumname: r.Fields.Raumname, Gebaeude: r.Fields.Gebaeude}
	if r.Fields.Kapazitaet != 0 {
		form.Kapazitaet = strconv.Itoa(int(r.Fields.Kapazitaet))
	}
	return form
}

// Request converts the form. Values that are not numbers are reported per field.
func (f RaumForm) Request() (RaumRequest, map[string]string) {
	errs := map[string]string{}
	req := RaumRequest{Raumname: f.Raumname, Gebaeude: f.Gebaeude}
	req.Kapazitaet = parseIntField(errs, "kapazitaet", f.Kapazitaet)
	return req, errs
}
