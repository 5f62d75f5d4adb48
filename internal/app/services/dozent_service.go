package services

import (
	"context"
	"fmt"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/repositories"
)

// DozentService defines the interface for instructor operations
type DozentService interface {
	List(ctx context.Context) ([]models.Dozent, error)
	Get(ctx context.Context, id string) (*models.Dozent, error)
	Create(ctx context.Context, req dto.DozentRequest) (*models.Dozent, error)
	Update(ctx context.Context, id string, req dto.DozentRequest) (*models.Dozent, error)
	Delete(ctx context.Context, id string) error
}

// dozentServiceImpl implements the DozentService interface
type dozentServiceImpl struct {
	repo *repositories.RecordRepository[models.DozentFields]
}

// NewDozentService creates a new dozent service instance
func NewDozentService(repo *repositories.RecordRepository[models.DozentFields]) DozentService {
	return &dozentServiceImpl{repo: repo}
}

func dozentFields(req dto.DozentRequest) models.DozentFields {
	return models.DozentFields{
		Name:       req.Name,
		Email:      req.Email,
		Telefon:    req.Telefon,
		Fachgebiet: req.Fachgebiet,
	}
}

func (s *dozentServiceImpl) List(ctx context.Context) ([]models.Dozent, error) {
	return s.repo.List(ctx)
}

func (s *dozentServiceImpl) Get(ctx context.Context, id string) (*models.Dozent, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new dozent. Empty optional fields are omitted.
func (s *dozentServiceImpl) Create(ctx context.Context, req dto.DozentRequest) (*models.Dozent, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := dozentFields(req)
	id, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return &models.Dozent{RecordID: id, Fields: fields}, nil
}

// Update replaces all form fields of a dozent; cleared optional fields are removed.
func (s *dozentServiceImpl) Update(ctx context.Context, id string, req dto.DozentRequest) (*models.Dozent, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := dozentFields(req)
	payload, err := updatePayload(fields, "telefon", "fachgebiet")
	if err != nil {
		return nil, fmt.Errorf("error updating dozent: %w", err)
	}
	if err := s.repo.Update(ctx, id, payload); err != nil {
		return nil, err
	}
	return &models.Dozent{RecordID: id, Fields: fields}, nil
}

func (s *dozentServiceImpl) Delete(ctx context.Context, id string) error {
	if err := checkRecordID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
