package models

// RaumFields are the fields of a room record
type RaumFields struct {
	Raumname   string `json:"raumname,omitempty" example:"Raum 101"`
	Gebaeude   string `json:"gebaeude,omitempty" example:"Hauptgebäude"`
	Kapazitaet Count  `json:"kapazitaet,omitempty" example:"30"`
}

// Raum is a room
type Raum = Record[RaumFields]
