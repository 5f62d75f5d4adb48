package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/repositories"
	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/helpers"
	"github.com/yigit/kursverwaltung/internal/pkg/logger"
)

// AnmeldungService defines the interface for enrollment operations
type AnmeldungService interface {
	List(ctx context.Context) ([]models.Anmeldung, error)
	Get(ctx context.Context, id string) (*models.Anmeldung, error)
	Create(ctx context.Context, req dto.AnmeldungRequest) (*models.Anmeldung, error)
	Update(ctx context.Context, id string, req dto.AnmeldungRequest) (*models.Anmeldung, error)
	Delete(ctx context.Context, id string) error
	// TogglePaid flips the paid flag, touching no other field
	TogglePaid(ctx context.Context, id string) (*models.Anmeldung, error)
	// SetPaid sets the paid flag, touching no other field
	SetPaid(ctx context.Context, id string, bezahlt bool) (*models.Anmeldung, error)
}

type anmeldungServiceImpl struct {
	anmeldungen *repositories.RecordRepository[models.AnmeldungFields]
	teilnehmer  *repositories.RecordRepository[models.TeilnehmerFields]
	kurse       *repositories.RecordRepository[models.KursFields]
	now         func() time.Time
}

// NewAnmeldungService creates a new anmeldung service instance. now supplies
// the default enrollment date.
func NewAnmeldungService(repos *repositories.Repositories, now func() time.Time) AnmeldungService {
	if now == nil {
		now = time.Now
	}
	return &anmeldungServiceImpl{
		anmeldungen: repos.Anmeldungen,
		teilnehmer:  repos.Teilnehmer,
		kurse:       repos.Kurse,
		now:         now,
	}
}

func (s *anmeldungServiceImpl) List(ctx context.Context) ([]models.Anmeldung, error) {
	return s.anmeldungen.List(ctx)
}

func (s *anmeldungServiceImpl) Get(ctx context.Context, id string) (*models.Anmeldung, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	return s.anmeldungen.Get(ctx, id)
}

// Create enrolls a participant. At least one Teilnehmer and one Kurs have to
// exist; the enrollment date defaults to today.
func (s *anmeldungServiceImpl) Create(ctx context.Context, req dto.AnmeldungRequest) (*models.Anmeldung, error) {
	req.Normalize()
	fields, err := s.prepare(ctx, req, true)
	if err != nil {
		return nil, err
	}

	id, err := s.anmeldungen.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return &models.Anmeldung{RecordID: id, Fields: fields}, nil
}

func (s *anmeldungServiceImpl) Update(ctx context.Context, id string, req dto.AnmeldungRequest) (*models.Anmeldung, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	req.Normalize()
	fields, err := s.prepare(ctx, req, false)
	if err != nil {
		return nil, err
	}

	if err := s.anmeldungen.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return &models.Anmeldung{RecordID: id, Fields: fields}, nil
}

func (s *anmeldungServiceImpl) Delete(ctx context.Context, id string) error {
	if err := checkRecordID(id); err != nil {
		return err
	}
	return s.anmeldungen.Delete(ctx, id)
}

func (s *anmeldungServiceImpl) TogglePaid(ctx context.Context, id string) (*models.Anmeldung, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.SetPaid(ctx, id, !current.Fields.Bezahlt)
}

func (s *anmeldungServiceImpl) SetPaid(ctx context.Context, id string, bezahlt bool) (*models.Anmeldung, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	if err := s.anmeldungen.Update(ctx, id, models.BezahltPatch{Bezahlt: bezahlt}); err != nil {
		return nil, err
	}
	logger.Info().Str("anmeldungID", id).Bool("bezahlt", bezahlt).Msg("Payment status changed")

	updated, err := s.anmeldungen.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error reloading anmeldung: %w", err)
	}
	return updated, nil
}

func (s *anmeldungServiceImpl) prepare(ctx context.Context, req dto.AnmeldungRequest, requirePrerequisites bool) (models.AnmeldungFields, error) {
	teilnehmer, err := s.teilnehmer.List(ctx)
	if err != nil {
		return models.AnmeldungFields{}, err
	}
	kurse, err := s.kurse.List(ctx)
	if err != nil {
		return models.AnmeldungFields{}, err
	}

	if requirePrerequisites && (len(teilnehmer) == 0 || len(kurse) == 0) {
		return models.AnmeldungFields{}, apperrors.NewCustomError(apperrors.ErrMissingPrerequisite,
			AnmeldungPrerequisiteNotice(len(teilnehmer) > 0, len(kurse) > 0))
	}

	if req.Anmeldedatum == "" {
		req.Anmeldedatum = helpers.Today(s.now())
	}

	err = validate(req, func(verr *apperrors.ValidationError) {
		if req.TeilnehmerID != "" && !containsRecord(teilnehmer, req.TeilnehmerID) {
			verr.Add("teilnehmer_id", "Teilnehmer nicht gefunden")
		}
		if req.KursID != "" && !containsRecord(kurse, req.KursID) {
			verr.Add("kurs_id", "Kurs nicht gefunden")
		}
	})
	if err != nil {
		return models.AnmeldungFields{}, err
	}

	return models.AnmeldungFields{
		Teilnehmer:   s.teilnehmer.RecordURL(req.TeilnehmerID),
		Kurs:         s.kurse.RecordURL(req.KursID),
		Anmeldedatum: req.Anmeldedatum,
		Bezahlt:      req.Bezahlt,
	}, nil
}
