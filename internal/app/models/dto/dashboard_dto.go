package dto

// DashboardStats are the figures of the stat cards
type DashboardStats struct {
	Kurse             int     `json:"kurse" example:"4"`
	KurseBevorstehend int     `json:"kurse_bevorstehend" example:"2"`
	Dozenten          int     `json:"dozenten" example:"3"`
	Teilnehmer        int     `json:"teilnehmer" example:"12"`
	Raeume            int     `json:"raeume" example:"2"`
	Anmeldungen       int     `json:"anmeldungen" example:"9"`
	Bezahlt           int     `json:"bezahlt" example:"6"`
	Offen             int     `json:"offen" example:"3"`
	Umsatz            float64 `json:"umsatz" example:"2940"`
}

// DashboardResponse is the JSON form of the dashboard
type DashboardResponse struct {
	Stats      DashboardStats `json:"stats"`
	LoadErrors []string       `json:"load_errors,omitempty"`
}
