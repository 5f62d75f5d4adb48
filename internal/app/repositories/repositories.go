package repositories

import "github.com/yigit/kursverwaltung/internal/app/models"

// Repositories holds all the repository instances
type Repositories struct {
	Store       RecordStore
	Apps        AppIDs
	Dozenten    *RecordRepository[models.DozentFields]
	Raeume      *RecordRepository[models.RaumFields]
	Teilnehmer  *RecordRepository[models.TeilnehmerFields]
	Kurse       *RecordRepository[models.KursFields]
	Anmeldungen *RecordRepository[models.AnmeldungFields]
}

// NewRepositories initializes all repositories on top of one store
func NewRepositories(store RecordStore, apps AppIDs) *Repositories {
	return &Repositories{
		Store:       store,
		Apps:        apps,
		Dozenten:    NewRecordRepository[models.DozentFields](store, apps.Dozenten, "dozent"),
		Raeume:      NewRecordRepository[models.RaumFields](store, apps.Raeume, "raum"),
		Teilnehmer:  NewRecordRepository[models.TeilnehmerFields](store, apps.Teilnehmer, "teilnehmer"),
		Kurse:       NewRecordRepository[models.KursFields](store, apps.Kurse, "kurs"),
		Anmeldungen: NewRecordRepository[models.AnmeldungFields](store, apps.Anmeldungen, "anmeldung"),
	}
}
