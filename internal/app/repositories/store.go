package repositories

import (
	"context"

	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
)

// RecordStore is the record storage behind all repositories. The LivingApps
// client implements it directly; PostgresRecordStore and MemoryRecordStore
// mirror its semantics.
type RecordStore interface {
	ListRecords(ctx context.Context, appID string) ([]livingapps.Record, error)
	GetRecord(ctx context.Context, appID, recordID string) (*livingapps.Record, error)
	CreateRecord(ctx context.Context, appID string, fields interface{}) (string, error)
	// UpdateRecord merges fields into the stored record. A JSON null clears a field.
	UpdateRecord(ctx context.Context, appID, recordID string, fields interface{}) error
	DeleteRecord(ctx context.Context, appID, recordID string) error
	RecordURL(appID, recordID string) string
}

var _ RecordStore = (*livingapps.Client)(nil)

// AppIDs maps every entity to its app
type AppIDs struct {
	Dozenten    string
	Raeume      string
	Teilnehmer  string
	Kurse       string
	Anmeldungen string
}

// DefaultAppIDs are used by stores that own their data (memory, postgres)
// when no LivingApps ids are configured.
var DefaultAppIDs = AppIDs{
	Dozenten:    "d0000000000000000000d0ce",
	Raeume:      "a0000000000000000000ae00",
	Teilnehmer:  "e0000000000000000000ae11",
	Kurse:       "c0000000000000000000c0de",
	Anmeldungen: "b0000000000000000000a11d",
}

// WithDefaults fills empty ids from DefaultAppIDs
func (a AppIDs) WithDefaults() AppIDs {
	fill := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return AppIDs{
		Dozenten:    fill(a.Dozenten, DefaultAppIDs.Dozenten),
		Raeume:      fill(a.Raeume, DefaultAppIDs.Raeume),
		Teilnehmer:  fill(a.Teilnehmer, DefaultAppIDs.Teilnehmer),
		Kurse:       fill(a.Kurse, DefaultAppIDs.Kurse),
		Anmeldungen: fill(a.Anmeldungen, DefaultAppIDs.Anmeldungen),
	}
}
