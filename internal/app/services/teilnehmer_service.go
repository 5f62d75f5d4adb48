package services

import (
	"context"
	"fmt"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/repositories"
)

// TeilnehmerService defines the interface for participant operations
type TeilnehmerService interface {
	List(ctx context.Context) ([]models.Teilnehmer, error)
	Get(ctx context.Context, id string) (*models.Teilnehmer, error)
	Create(ctx context.Context, req dto.TeilnehmerRequest) (*models.Teilnehmer, error)
	Update(ctx context.Context, id string, req dto.TeilnehmerRequest) (*models.Teilnehmer, error)
	Delete(ctx context.Context, id string) error
}

type teilnehmerServiceImpl struct {
	repo *repositories.RecordRepository[models.TeilnehmerFields]
}

// NewTeilnehmerService creates a new teilnehmer service instance
func NewTeilnehmerService(repo *repositories.RecordRepository[models.TeilnehmerFields]) TeilnehmerService {
	return &teilnehmerServiceImpl{repo: repo}
}

func teilnehmerFields(req dto.TeilnehmerRequest) models.TeilnehmerFields {
	return models.TeilnehmerFields{
		Name:         req.Name,
		Email:        req.Email,
		Telefon:      req.Telefon,
		Geburtsdatum: req.Geburtsdatum,
	}
}

func (s *teilnehmerServiceImpl) List(ctx context.Context) ([]models.Teilnehmer, error) {
	return s.repo.List(ctx)
}

func (s *teilnehmerServiceImpl) Get(ctx context.Context, id string) (*models.Teilnehmer, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *teilnehmerServiceImpl) Create(ctx context.Context, req dto.TeilnehmerRequest) (*models.Teilnehmer, error) {
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := teilnehmerFields(req)
	id, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return &models.Teilnehmer{RecordID: id, Fields: fields}, nil
}

func (s *teilnehmerServiceImpl) Update(ctx context.Context, id string, req dto.TeilnehmerRequest) (*models.Teilnehmer, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := teilnehmerFields(req)
	payload, err := updatePayload(fields, "telefon", "geburtsdatum")
	if err != nil {
		return nil, fmt.Errorf("error updating teilnehmer: %w", err)
	}
	if err := s.repo.Update(ctx, id, payload); err != nil {
		return nil, err
	}
	return &models.Teilnehmer{RecordID: id, Fields: fields}, nil
}

func (s *teilnehmerServiceImpl) Delete(ctx context.Context, id string) error {
	if err := checkRecordID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
