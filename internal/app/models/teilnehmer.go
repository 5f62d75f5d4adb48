package models

// TeilnehmerFields are the fields of a participant record
type TeilnehmerFields struct {
	Name         string `json:"name,omitempty" example:"Max Mustermann"`
	Email        string `json:"email,omitempty" example:"max@example.de"`
	Telefon      string `json:"telefon,omitempty" example:"0171 1234567"`
	Geburtsdatum string `json:"geburtsdatum,omitempty" example:"1990-05-17"`
}

// Teilnehmer is a participant
type Teilnehmer = Record[TeilnehmerFields]
