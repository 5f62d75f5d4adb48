package models

// AnmeldungFields are the fields of an enrollment record. Teilnehmer and
// Kurs hold record URLs.
type AnmeldungFields struct {
	Teilnehmer   string `json:"teilnehmer,omitempty"`
	Kurs         string `json:"kurs,omitempty"`
	Anmeldedatum string `json:"anmeldedatum,omitempty" example:"2024-02-10"`
	Bezahlt      bool   `json:"bezahlt" example:"false"`
}

// Anmeldung is an enrollment
type Anmeldung = Record[AnmeldungFields]

// BezahltPatch is the payload that flips only the paid flag of an enrollment
type BezahltPatch struct {
	Bezahlt bool `json:"bezahlt"`
}
