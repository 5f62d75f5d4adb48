package models

// DozentFields are the fields of an instructor record
type DozentFields struct {
	Name       string `json:"name,omitempty" example:"Dr. Anna Schmidt"`
	Email      string `json:"email,omitempty" example:"anna.schmidt@example.de"`
	Telefon    string `json:"telefon,omitempty" example:"+49 30 1234567"`
	Fachgebiet string `json:"fachgebiet,omitempty" example:"Informatik"`
}

// Dozent is an instructor
type Dozent = Record[DozentFields]
