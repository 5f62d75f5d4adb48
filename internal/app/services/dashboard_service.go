package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/repositories"
	"github.com/yigit/kursverwaltung/internal/pkg/logger"
)

// DashboardService loads everything the dashboard shows
type DashboardService interface {
	// Load fetches all five collections concurrently. A collection that fails
	// is logged, left empty and named in Dashboard.LoadErrors.
	Load(ctx context.Context) *Dashboard
	Now() time.Time
}

type dashboardServiceImpl struct {
	repos *repositories.Repositories
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(repos *repositories.Repositories, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardServiceImpl{repos: repos, now: now}
}

func (s *dashboardServiceImpl) Now() time.Time {
	return s.now()
}

func (s *dashboardServiceImpl) Load(ctx context.Context) *Dashboard {
	var (
		dozenten    []models.Dozent
		raeume      []models.Raum
		teilnehmer  []models.Teilnehmer
		kurse       []models.Kurs
		anmeldungen []models.Anmeldung
		failed      [5]bool
	)

	var g errgroup.Group
	load := func(slot int, name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				logger.Error().Err(err).Str("collection", name).Msg("Failed to load dashboard data")
				failed[slot] = true
			}
			return nil
		})
	}

	load(0, "dozenten", func() (err error) { dozenten, err = s.repos.Dozenten.List(ctx); return })
	load(1, "raeume", func() (err error) { raeume, err = s.repos.Raeume.List(ctx); return })
	load(2, "teilnehmer", func() (err error) { teilnehmer, err = s.repos.Teilnehmer.List(ctx); return })
	load(3, "kurse", func() (err error) { kurse, err = s.repos.Kurse.List(ctx); return })
	load(4, "anmeldungen", func() (err error) { anmeldungen, err = s.repos.Anmeldungen.List(ctx); return })
	_ = g.Wait()

	d := NewDashboard(dozenten, raeume, teilnehmer, kurse, anmeldungen)
	labels := [5]string{"Dozenten", "Räume", "Teilnehmer", "Kurse", "Anmeldungen"}
	for i, f := range failed {
		if f {
			d.LoadErrors = append(d.LoadErrors, labels[i])
		}
	}
	return d
}
