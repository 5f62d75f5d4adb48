package services

import (
	"context"
	"fmt"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/repositories"
	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
)

// KursService defines the interface for course operations
type KursService interface {
	List(ctx context.Context) ([]models.Kurs, error)
	Get(ctx context.Context, id string) (*models.Kurs, error)
	Create(ctx context.Context, req dto.KursRequest) (*models.Kurs, error)
	Update(ctx context.Context, id string, req dto.KursRequest) (*models.Kurs, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, req dto.KursRequest) error
}

type kursServiceImpl struct {
	kurse    *repositories.RecordRepository[models.KursFields]
	dozenten *repositories.RecordRepository[models.DozentFields]
	raeume   *repositories.RecordRepository[models.RaumFields]
}

// NewKursService creates a new kurs service instance
func NewKursService(repos *repositories.Repositories) KursService {
	return &kursServiceImpl{
		kurse:    repos.Kurse,
		dozenten: repos.Dozenten,
		raeume:   repos.Raeume,
	}
}

func (s *kursServiceImpl) List(ctx context.Context) ([]models.Kurs, error) {
	return s.kurse.List(ctx)
}

func (s *kursServiceImpl) Get(ctx context.Context, id string) (*models.Kurs, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	return s.kurse.Get(ctx, id)
}

// Create stores a new course. At least one Dozent and one Raum have to exist
// and the selected ones must be among them.
func (s *kursServiceImpl) Create(ctx context.Context, req dto.KursRequest) (*models.Kurs, error) {
	req.Normalize()
	fields, err := s.prepare(ctx, req, true)
	if err != nil {
		return nil, err
	}

	id, err := s.kurse.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return &models.Kurs{RecordID: id, Fields: fields}, nil
}

// Update replaces all form fields of a course. An emptied beschreibung is removed.
func (s *kursServiceImpl) Update(ctx context.Context, id string, req dto.KursRequest) (*models.Kurs, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	req.Normalize()
	fields, err := s.prepare(ctx, req, false)
	if err != nil {
		return nil, err
	}

	payload, err := updatePayload(fields, "beschreibung")
	if err != nil {
		return nil, fmt.Errorf("error updating kurs: %w", err)
	}
	if err := s.kurse.Update(ctx, id, payload); err != nil {
		return nil, err
	}
	return &models.Kurs{RecordID: id, Fields: fields}, nil
}

func (s *kursServiceImpl) Delete(ctx context.Context, id string) error {
	if err := checkRecordID(id); err != nil {
		return err
	}
	return s.kurse.Delete(ctx, id)
}

// Validate checks req against the stored instructors and rooms without storing it
func (s *kursServiceImpl) Validate(ctx context.Context, req dto.KursRequest) error {
	req.Normalize()
	_, err := s.prepare(ctx, req, false)
	return err
}

// prepare validates req against the stored instructors and rooms and maps it
// to record fields with reference URLs.
func (s *kursServiceImpl) prepare(ctx context.Context, req dto.KursRequest, requirePrerequisites bool) (models.KursFields, error) {
	dozenten, err := s.dozenten.List(ctx)
	if err != nil {
		return models.KursFields{}, err
	}
	raeume, err := s.raeume.List(ctx)
	if err != nil {
		return models.KursFields{}, err
	}

	if requirePrerequisites && (len(dozenten) == 0 || len(raeume) == 0) {
		return models.KursFields{}, apperrors.NewCustomError(apperrors.ErrMissingPrerequisite,
			KursPrerequisiteNotice(len(dozenten) > 0, len(raeume) > 0))
	}

	err = validate(req, func(verr *apperrors.ValidationError) {
		if req.DozentID != "" && !containsRecord(dozenten, req.DozentID) {
			verr.Add("dozent_id", "Dozent nicht gefunden")
		}
		if req.RaumID != "" && !containsRecord(raeume, req.RaumID) {
			verr.Add("raum_id", "Raum nicht gefunden")
		}
		start, okStart := models.ParseDate(req.Startdatum)
		end, okEnd := models.ParseDate(req.Enddatum)
		if okStart && okEnd && end.Before(start) {
			verr.Add("enddatum", "Das Enddatum darf nicht vor dem Startdatum liegen")
		}
	})
	if err != nil {
		return models.KursFields{}, err
	}

	return models.KursFields{
		Titel:         req.Titel,
		Beschreibung:  req.Beschreibung,
		Startdatum:    req.Startdatum,
		Enddatum:      req.Enddatum,
		MaxTeilnehmer: models.Count(req.MaxTeilnehmer),
		Preis:         req.Preis,
		Dozent:        s.dozenten.RecordURL(req.DozentID),
		Raum:          s.raeume.RecordURL(req.RaumID),
	}, nil
}

func containsRecord[F any](records []models.Record[F], id string) bool {
	for _, rec := range records {
		if rec.RecordID == id {
			return true
		}
	}
	return false
}
