package services

import (
	"context"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/repositories"
)

// RaumService defines the interface for room operations
type RaumService interface {
	List(ctx context.Context) ([]models.Raum, error)
	Get(ctx context.Context, id string) (*models.Raum, error)
	Create(ctx context.Context, req dto.RaumRequest) (*models.Raum, error)
	Update(ctx context.Context, id string, req dto.RaumRequest) (*models.Raum, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, req dto.RaumRequest) error
}

type raumServiceImpl struct {
	repo *repositories.RecordRepository[models.RaumFields]
}

// NewRaumService creates a new raum service instance
func NewRaumService(repo *repositories.RecordRepository[models.RaumFields]) RaumService {
	return &raumServiceImpl{repo: repo}
}

func raumFields(req dto.RaumRequest) models.RaumFields {
	return models.RaumFields{
		Raumname:   req.Raumname,
		Gebaeude:   req.Gebaeude,
		Kapazitaet: models.Count(req.Kapazitaet),
	}
}

func (s *raumServiceImpl) List(ctx context.Context) ([]models.Raum, error) {
	return s.repo.List(ctx)
}

func (s *raumServiceImpl) Get(ctx context.Context, id string) (*models.Raum, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *raumServiceImpl) Create(ctx context.Context, req dto.RaumRequest) (*models.Raum, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := raumFields(req)
	id, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return &models.Raum{RecordID: id, Fields: fields}, nil
}

// Update replaces all fields of a room. Every room field is required, so the
// typed fields are sent as they are.
func (s *raumServiceImpl) Update(ctx context.Context, id string, req dto.RaumRequest) (*models.Raum, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := raumFields(req)
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return &models.Raum{RecordID: id, Fields: fields}, nil
}

func (s *raumServiceImpl) Delete(ctx context.Context, id string) error {
	if err := checkRecordID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Validate checks req without storing it
func (s *raumServiceImpl) Validate(_ context.Context, req dto.RaumRequest) error {
	req.Normalize()
	return validate(req)
}
