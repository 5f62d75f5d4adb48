package models

import "time"

// KursFields are the fields of a course record. Dozent and Raum hold
// record URLs.
type KursFields struct {
	Titel         string   `json:"titel,omitempty" example:"Einführung in Go"`
	Beschreibung  string   `json:"beschreibung,omitempty" example:"Grundlagen der Programmiersprache Go"`
	Startdatum    string   `json:"startdatum,omitempty" example:"2024-03-01"`
	Enddatum      string   `json:"enddatum,omitempty" example:"2024-03-05"`
	MaxTeilnehmer Count    `json:"max_teilnehmer,omitempty" example:"12"`
	Preis         *float64 `json:"preis,omitempty" example:"490"` // nil when unset, 0 is a valid price
	Dozent        string   `json:"dozent,omitempty"`
	Raum          string   `json:"raum,omitempty"`
}

// Kurs is a course
type Kurs = Record[KursFields]

// IsUpcoming reports whether the course starts after now
func (f KursFields) IsUpcoming(now time.Time) bool {
	start, ok := ParseDate(f.Startdatum)
	if !ok {
		return false
	}
	return start.After(now)
}

// PreisValue returns the price or 0 when unset
func (f KursFields) PreisValue() float64 {
	if f.Preis == nil {
		return 0
	}
	return *f.Preis
}
