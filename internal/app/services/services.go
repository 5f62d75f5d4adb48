package services

import (
	"time"

	"github.com/yigit/kursverwaltung/internal/app/repositories"
)

// Services holds all the service instances
type Services struct {
	Dozenten    DozentService
	Raeume      RaumService
	Teilnehmer  TeilnehmerService
	Kurse       KursService
	Anmeldungen AnmeldungService
	Dashboard   DashboardService
}

// NewServices wires every service to the repositories. now is the clock used
// for default dates and upcoming courses; nil means time.Now.
func NewServices(repos *repositories.Repositories, now func() time.Time) *Services {
	return &Services{
		Dozenten:    NewDozentService(repos.Dozenten),
		Raeume:      NewRaumService(repos.Raeume),
		Teilnehmer:  NewTeilnehmerService(repos.Teilnehmer),
		Kurse:       NewKursService(repos),
		Anmeldungen: NewAnmeldungService(repos, now),
		Dashboard:   NewDashboardService(repos, now),
	}
}
