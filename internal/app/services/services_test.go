package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/repositories"
	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
)

const testBaseURL = "https://example.test/rest"

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T) (*Services, *repositories.Repositories) {
	t.Helper()
	repos := repositories.NewRepositories(repositories.NewMemoryRecordStore(testBaseURL), repositories.DefaultAppIDs)
	return NewServices(repos, func() time.Time { return testNow }), repos
}

func ptr(f float64) *float64 { return &f }

// seedBasics creates one Dozent, Raum and Teilnehmer and returns their ids
func seedBasics(t *testing.T, svc *Services) (dozentID, raumID, teilnehmerID string) {
	t.Helper()
	ctx := context.Background()

	d, err := svc.Dozenten.Create(ctx, dto.DozentRequest{Name: "Dr. Anna Schmidt", Email: "anna@example.de"})
	require.NoError(t, err)
	r, err := svc.Raeume.Create(ctx, dto.RaumRequest{Raumname: "Raum 101", Gebaeude: "Hauptgebäude", Kapazitaet: 20})
	require.NoError(t, err)
	p, err := svc.Teilnehmer.Create(ctx, dto.TeilnehmerRequest{Name: "Max Mustermann", Email: "max@example.de"})
	require.NoError(t, err)
	return d.RecordID, r.RecordID, p.RecordID
}

func validKurs(dozentID, raumID string) dto.KursRequest {
	return dto.KursRequest{
		Titel:         "Einführung in Go",
		Startdatum:    "2024-07-01",
		Enddatum:      "2024-07-05",
		MaxTeilnehmer: 2,
		Preis:         ptr(490),
		DozentID:      dozentID,
		RaumID:        raumID,
	}
}

func TestDozentCreateOmitsEmptyOptionals(t *testing.T) {
	svc, repos := newTestServices(t)
	ctx := context.Background()

	d, err := svc.Dozenten.Create(ctx, dto.DozentRequest{Name: "  Ada  ", Email: "ada@example.de"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", d.Fields.Name)

	raw, err := repos.Store.GetRecord(ctx, repos.Apps.Dozenten, d.RecordID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Ada", "email": "ada@example.de"}`, string(raw.Fields))
}

func TestDozentValidation(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.Dozenten.Create(context.Background(), dto.DozentRequest{Email: "falsch"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	fields := apperrors.FieldErrors(err)
	assert.Equal(t, "Pflichtfeld", fields["name"])
	assert.Contains(t, fields, "email")
}

func TestDozentUpdateClearsOptional(t *testing.T) {
	svc, repos := newTestServices(t)
	ctx := context.Background()

	d, err := svc.Dozenten.Create(ctx, dto.DozentRequest{Name: "Ada", Email: "ada@example.de", Fachgebiet: "Mathematik"})
	require.NoError(t, err)

	_, err = svc.Dozenten.Update(ctx, d.RecordID, dto.DozentRequest{Name: "Ada Lovelace", Email: "ada@example.de"})
	require.NoError(t, err)

	raw, err := repos.Store.GetRecord(ctx, repos.Apps.Dozenten, d.RecordID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Ada Lovelace", "email": "ada@example.de"}`, string(raw.Fields))
}

func TestGetRejectsInvalidID(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.Dozenten.Get(context.Background(), "../etc")
	require.ErrorIs(t, err, apperrors.ErrInvalidRecordID)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Raeume.Get(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaa")
	require.ErrorIs(t, err, apperrors.ErrRecordNotFound)
}

func TestRaumDelete(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	r, err := svc.Raeume.Create(ctx, dto.RaumRequest{Raumname: "A", Gebaeude: "B", Kapazitaet: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Raeume.Delete(ctx, r.RecordID))
	require.ErrorIs(t, svc.Raeume.Delete(ctx, r.RecordID), apperrors.ErrRecordNotFound)

	_, err = svc.Raeume.Create(ctx, dto.RaumRequest{Raumname: "A", Gebaeude: "B"})
	assert.Equal(t, "Muss mindestens 1 sein", apperrors.FieldErrors(err)["kapazitaet"])
}

func TestTeilnehmerUpdate(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	p, err := svc.Teilnehmer.Create(ctx, dto.TeilnehmerRequest{Name: "Max", Email: "max@example.de", Geburtsdatum: "1990-05-17"})
	require.NoError(t, err)

	_, err = svc.Teilnehmer.Update(ctx, p.RecordID, dto.TeilnehmerRequest{Name: "Max", Email: "max@example.de"})
	require.NoError(t, err)

	got, err := svc.Teilnehmer.Get(ctx, p.RecordID)
	require.NoError(t, err)
	assert.Empty(t, got.Fields.Geburtsdatum)
}

func TestKursRequiresDozentAndRaum(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Kurse.Create(ctx, validKurs("aaaaaaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbbbbbb"))
	require.ErrorIs(t, err, apperrors.ErrMissingPrerequisite)
	assert.Equal(t, "Bitte fügen Sie zuerst Dozenten und Räume hinzu, bevor Sie Kurse erstellen können.", err.Error())

	_, err = svc.Dozenten.Create(ctx, dto.DozentRequest{Name: "Ada", Email: "ada@example.de"})
	require.NoError(t, err)
	_, err = svc.Kurse.Create(ctx, validKurs("aaaaaaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbbbbbb"))
	require.ErrorIs(t, err, apperrors.ErrMissingPrerequisite)
	assert.Equal(t, "Bitte fügen Sie zuerst Räume hinzu, bevor Sie Kurse erstellen können.", err.Error())
}

func TestKursCreateStoresReferences(t *testing.T) {
	svc, repos := newTestServices(t)
	ctx := context.Background()
	dozentID, raumID, _ := seedBasics(t, svc)

	k, err := svc.Kurse.Create(ctx, validKurs(dozentID, raumID))
	require.NoError(t, err)
	assert.Equal(t, livingapps.RecordURL(testBaseURL, repos.Apps.Dozenten, dozentID), k.Fields.Dozent)
	assert.Equal(t, livingapps.RecordURL(testBaseURL, repos.Apps.Raeume, raumID), k.Fields.Raum)

	raw, err := repos.Store.GetRecord(ctx, repos.Apps.Kurse, k.RecordID)
	require.NoError(t, err)
	assert.NotContains(t, string(raw.Fields), "beschreibung")
}

func TestKursCrossFieldValidation(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	dozentID, raumID, _ := seedBasics(t, svc)

	req := validKurs(dozentID, "cccccccccccccccccccccccc")
	req.Enddatum = "2024-06-30"
	_, err := svc.Kurse.Create(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	fields := apperrors.FieldErrors(err)
	assert.Equal(t, "Das Enddatum darf nicht vor dem Startdatum liegen", fields["enddatum"])
	assert.Equal(t, "Raum nicht gefunden", fields["raum_id"])
	assert.NotContains(t, fields, "dozent_id")

	req = validKurs(dozentID, raumID)
	req.Preis = ptr(0)
	req.Enddatum = req.Startdatum
	_, err = svc.Kurse.Create(ctx, req)
	require.NoError(t, err)
}

func TestKursUpdateClearsBeschreibung(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	dozentID, raumID, _ := seedBasics(t, svc)

	req := validKurs(dozentID, raumID)
	req.Beschreibung = "Grundlagen"
	k, err := svc.Kurse.Create(ctx, req)
	require.NoError(t, err)

	req.Beschreibung = ""
	req.Titel = "Go für Fortgeschrittene"
	_, err = svc.Kurse.Update(ctx, k.RecordID, req)
	require.NoError(t, err)

	got, err := svc.Kurse.Get(ctx, k.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "Go für Fortgeschrittene", got.Fields.Titel)
	assert.Empty(t, got.Fields.Beschreibung)
}

func TestKursDeleteKeepsAnmeldungen(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	dozentID, raumID, teilnehmerID := seedBasics(t, svc)

	k, err := svc.Kurse.Create(ctx, validKurs(dozentID, raumID))
	require.NoError(t, err)
	_, err = svc.Anmeldungen.Create(ctx, dto.AnmeldungRequest{TeilnehmerID: teilnehmerID, KursID: k.RecordID})
	require.NoError(t, err)

	require.NoError(t, svc.Kurse.Delete(ctx, k.RecordID))

	anmeldungen, err := svc.Anmeldungen.List(ctx)
	require.NoError(t, err)
	require.Len(t, anmeldungen, 1)

	d := svc.Dashboard.Load(ctx)
	assert.Equal(t, "-", d.KursTitel(anmeldungen[0].Fields.Kurs))
}

func TestAnmeldungDefaultsDateToToday(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	dozentID, raumID, teilnehmerID := seedBasics(t, svc)
	k, err := svc.Kurse.Create(ctx, validKurs(dozentID, raumID))
	require.NoError(t, err)

	a, err := svc.Anmeldungen.Create(ctx, dto.AnmeldungRequest{TeilnehmerID: teilnehmerID, KursID: k.RecordID})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", a.Fields.Anmeldedatum)
	assert.False(t, a.Fields.Bezahlt)
}

func TestAnmeldungRequiresTeilnehmerAndKurs(t *testing.T) {
	svc, _ := newTestServices(t)
	_, err := svc.Anmeldungen.Create(context.Background(), dto.AnmeldungRequest{
		TeilnehmerID: "aaaaaaaaaaaaaaaaaaaaaaaa",
		KursID:       "bbbbbbbbbbbbbbbbbbbbbbbb",
	})
	require.ErrorIs(t, err, apperrors.ErrMissingPrerequisite)
	assert.Contains(t, err.Error(), "Teilnehmer und Kurse")
}

func TestTogglePaidSendsOnlyFlag(t *testing.T) {
	svc, repos := newTestServices(t)
	ctx := context.Background()
	dozentID, raumID, teilnehmerID := seedBasics(t, svc)
	k, err := svc.Kurse.Create(ctx, validKurs(dozentID, raumID))
	require.NoError(t, err)
	a, err := svc.Anmeldungen.Create(ctx, dto.AnmeldungRequest{TeilnehmerID: teilnehmerID, KursID: k.RecordID, Anmeldedatum: "2024-05-20"})
	require.NoError(t, err)

	// a field the form does not know about must survive the toggle
	require.NoError(t, repos.Store.UpdateRecord(ctx, repos.Apps.Anmeldungen, a.RecordID, map[string]string{"notiz": "Rechnung folgt"}))

	toggled, err := svc.Anmeldungen.TogglePaid(ctx, a.RecordID)
	require.NoError(t, err)
	assert.True(t, toggled.Fields.Bezahlt)
	assert.Equal(t, "2024-05-20", toggled.Fields.Anmeldedatum)

	raw, err := repos.Store.GetRecord(ctx, repos.Apps.Anmeldungen, a.RecordID)
	require.NoError(t, err)
	assert.Contains(t, string(raw.Fields), "Rechnung folgt")

	toggled, err = svc.Anmeldungen.TogglePaid(ctx, a.RecordID)
	require.NoError(t, err)
	assert.False(t, toggled.Fields.Bezahlt)

	_, err = svc.Anmeldungen.TogglePaid(ctx, "aaaaaaaaaaaaaaaaaaaaaaaa")
	require.ErrorIs(t, err, apperrors.ErrRecordNotFound)
}

func TestDashboardStats(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	dozentID, raumID, teilnehmerID := seedBasics(t, svc)

	upcoming, err := svc.Kurse.Create(ctx, validKurs(dozentID, raumID))
	require.NoError(t, err)
	past := validKurs(dozentID, raumID)
	past.Startdatum, past.Enddatum, past.Preis = "2024-01-10", "2024-01-12", ptr(100)
	pastKurs, err := svc.Kurse.Create(ctx, past)
	require.NoError(t, err)

	for _, e := range []struct {
		kurs    string
		bezahlt bool
	}{{upcoming.RecordID, true}, {upcoming.RecordID, true}, {upcoming.RecordID, false}, {pastKurs.RecordID, true}} {
		_, err := svc.Anmeldungen.Create(ctx, dto.AnmeldungRequest{TeilnehmerID: teilnehmerID, KursID: e.kurs, Bezahlt: e.bezahlt})
		require.NoError(t, err)
	}

	d := svc.Dashboard.Load(ctx)
	require.Empty(t, d.LoadErrors)

	stats := d.Stats(testNow)
	assert.Equal(t, dto.DashboardStats{
		Kurse:             2,
		KurseBevorstehend: 1,
		Dozenten:          1,
		Teilnehmer:        1,
		Raeume:            1,
		Anmeldungen:       4,
		Bezahlt:           3,
		Offen:             1,
		Umsatz:            1080,
	}, stats)

	assert.Equal(t, 3, d.EnrollmentCount(upcoming.RecordID))
	assert.Equal(t, 100.0, d.FillPercent(*upcoming))
	assert.Equal(t, 50.0, d.FillPercent(*pastKurs))
	assert.Equal(t, "Dr. Anna Schmidt", d.DozentName(upcoming.Fields.Dozent))
	assert.Equal(t, "Raum 101 (Hauptgebäude)", d.RaumLabel(upcoming.Fields.Raum))
	assert.Equal(t, "Max Mustermann", d.TeilnehmerName(d.Anmeldungen[0].Fields.Teilnehmer))
	assert.True(t, d.CanCreateKurs())
	assert.Empty(t, d.KursNotice())
}

func TestDashboardLookupsUnresolvable(t *testing.T) {
	d := NewDashboard(nil, nil, nil, []models.Kurs{{RecordID: "aaaaaaaaaaaaaaaaaaaaaaaa"}}, nil)

	assert.Equal(t, "-", d.DozentName(""))
	assert.Equal(t, "-", d.RaumLabel("https://x/records/bbbbbbbbbbbbbbbbbbbbbbbb"))
	assert.Equal(t, "-", d.TeilnehmerName("kaputt"))
	assert.Equal(t, "-", d.KursTitel("https://x/records/aaaaaaaaaaaaaaaaaaaaaaaa"))
	assert.Zero(t, d.FillPercent(d.Kurse[0]))
	assert.False(t, d.CanCreateKurs())
	assert.Equal(t, "Bitte fügen Sie zuerst Dozenten und Räume hinzu, bevor Sie Kurse erstellen können.", d.KursNotice())
	assert.Equal(t, "Bitte fügen Sie zuerst Teilnehmer hinzu, bevor Sie Anmeldungen erstellen können.", d.AnmeldungNotice())
}

type failingStore struct {
	repositories.RecordStore
	app string
}

func (f failingStore) ListRecords(ctx context.Context, appID string) ([]livingapps.Record, error) {
	if appID == f.app {
		return nil, apperrors.ErrUpstream
	}
	return f.RecordStore.ListRecords(ctx, appID)
}

func TestDashboardLoadReportsFailedCollection(t *testing.T) {
	store := failingStore{RecordStore: repositories.NewMemoryRecordStore(testBaseURL), app: repositories.DefaultAppIDs.Raeume}
	repos := repositories.NewRepositories(store, repositories.DefaultAppIDs)
	svc := NewServices(repos, func() time.Time { return testNow })

	_, err := svc.Dozenten.Create(context.Background(), dto.DozentRequest{Name: "Ada", Email: "ada@example.de"})
	require.NoError(t, err)

	d := svc.Dashboard.Load(context.Background())
	assert.Equal(t, []string{"Räume"}, d.LoadErrors)
	assert.Len(t, d.Dozenten, 1)
	assert.Empty(t, d.Raeume)
}

func TestDashboardKeepsRecordsNextToMalformedOne(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryRecordStore(testBaseURL)
	repos := repositories.NewRepositories(store, repositories.DefaultAppIDs)
	svc := NewServices(repos, func() time.Time { return testNow })

	_, err := svc.Raeume.Create(ctx, dto.RaumRequest{Raumname: "Raum 101", Gebaeude: "A", Kapazitaet: 20})
	require.NoError(t, err)
	_, err = store.CreateRecord(ctx, repositories.DefaultAppIDs.Raeume, map[string]interface{}{"raumname": "Aula", "gebaeude": "B", "kapazitaet": json.RawMessage("30.0")})
	require.NoError(t, err)
	_, err = store.CreateRecord(ctx, repositories.DefaultAppIDs.Raeume, map[string]interface{}{"raumname": "Keller", "kapazitaet": "viele"})
	require.NoError(t, err)

	d := svc.Dashboard.Load(ctx)
	assert.Empty(t, d.LoadErrors)
	require.Len(t, d.Raeume, 2)
	assert.Equal(t, "Aula", d.Raeume[1].Fields.Raumname)
	assert.EqualValues(t, 30, d.Raeume[1].Fields.Kapazitaet)
}

func TestValidateDoesNotStore(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	err := svc.Raeume.Validate(ctx, dto.RaumRequest{Gebaeude: "A"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	fields := apperrors.FieldErrors(err)
	assert.Contains(t, fields, "raumname")
	assert.Contains(t, fields, "kapazitaet")
	require.NoError(t, svc.Raeume.Validate(ctx, dto.RaumRequest{Raumname: "101", Gebaeude: "A", Kapazitaet: 5}))

	req := dto.KursRequest{Titel: "Go", Startdatum: "2024-07-05", Enddatum: "2024-07-01", MaxTeilnehmer: 1, Preis: ptr(1)}
	err = svc.Kurse.Validate(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	fields = apperrors.FieldErrors(err)
	assert.Equal(t, "Das Enddatum darf nicht vor dem Startdatum liegen", fields["enddatum"])
	assert.Contains(t, fields, "dozent_id")

	raeume, err := svc.Raeume.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, raeume)
	kurse, err := svc.Kurse.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, kurse)
}
