package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
)

// CreateDemoData fills an empty store with a small set of Dozenten, Räume,
// Teilnehmer, Kurse and Anmeldungen. A store that already holds Dozenten is
// left untouched.
func CreateDemoData(ctx context.Context, svc *services.Services, lgr zerolog.Logger) error {
	existing, err := svc.Dozenten.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Int("dozenten", len(existing)).Msg("Store already has data, skipping demo seed")
		return nil
	}

	lgr.Info().Msg("Creating demo data...")
	var finalErr error // collect errors without stopping

	// --- Dozenten & Räume --- //
	var dozenten []string
	for _, req := range []dto.DozentRequest{
		{Name: "Dr. Anna Berger", Email: "anna.berger@example.de", Telefon: "030 1234567", Fachgebiet: "Softwareentwicklung"},
		{Name: "Markus Klein", Email: "markus.klein@example.de", Fachgebiet: "Projektmanagement"},
	} {
		d, err := svc.Dozenten.Create(ctx, req)
		if err != nil {
			lgr.Error().Err(err).Str("name", req.Name).Msg("Error creating demo Dozent")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		dozenten = append(dozenten, d.RecordID)
	}

	var raeume []string
	for _, req := range []dto.RaumRequest{
		{Raumname: "Seminarraum 1", Gebaeude: "Haus A", Kapazitaet: 20},
		{Raumname: "Labor", Gebaeude: "Haus B", Kapazitaet: 12},
	} {
		r, err := svc.Raeume.Create(ctx, req)
		if err != nil {
			lgr.Error().Err(err).Str("raumname", req.Raumname).Msg("Error creating demo Raum")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		raeume = append(raeume, r.RecordID)
	}

	var teilnehmer []string
	for _, req := range []dto.TeilnehmerRequest{
		{Name: "Lena Schmidt", Email: "lena.schmidt@example.de", Geburtsdatum: "1995-04-12"},
		{Name: "Jonas Weber", Email: "jonas.weber@example.de", Telefon: "0170 5551234"},
		{Name: "Sara Yilmaz", Email: "sara.yilmaz@example.de"},
	} {
		p, err := svc.Teilnehmer.Create(ctx, req)
		if err != nil {
			lgr.Error().Err(err).Str("name", req.Name).Msg("Error creating demo Teilnehmer")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		teilnehmer = append(teilnehmer, p.RecordID)
	}

	if len(dozenten) < 2 || len(raeume) < 2 || len(teilnehmer) < 3 {
		return errors.Join(finalErr, errors.New("demo seed incomplete, skipping Kurse and Anmeldungen"))
	}

	// --- Kurse --- //
	today := svc.Dashboard.Now()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(models.DateLayout)
	}
	price := func(v float64) *float64 { return &v }

	var kurse []string
	for _, req := range []dto.KursRequest{
		{
			Titel: "Go für Einsteiger", Beschreibung: "Grundlagen der Programmiersprache Go.",
			Startdatum: day(14), Enddatum: day(18), MaxTeilnehmer: 12, Preis: price(490),
			DozentID: dozenten[0], RaumID: raeume[1],
		},
		{
			Titel: "Agiles Projektmanagement",
			Startdatum: day(-30), Enddatum: day(-28), MaxTeilnehmer: 20, Preis: price(350),
			DozentID: dozenten[1], RaumID: raeume[0],
		},
	} {
		k, err := svc.Kurse.Create(ctx, req)
		if err != nil {
			lgr.Error().Err(err).Str("titel", req.Titel).Msg("Error creating demo Kurs")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		kurse = append(kurse, k.RecordID)
	}
	if len(kurse) < 2 {
		return finalErr
	}

	// --- Anmeldungen --- //
	for _, req := range []dto.AnmeldungRequest{
		{TeilnehmerID: teilnehmer[0], KursID: kurse[0], Anmeldedatum: day(-3), Bezahlt: true},
		{TeilnehmerID: teilnehmer[1], KursID: kurse[0], Anmeldedatum: day(-1)},
		{TeilnehmerID: teilnehmer[2], KursID: kurse[1], Anmeldedatum: day(-40), Bezahlt: true},
	} {
		if _, err := svc.Anmeldungen.Create(ctx, req); err != nil {
			lgr.Error().Err(err).Msg("Error creating demo Anmeldung")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo data created")
	}
	return finalErr
}
