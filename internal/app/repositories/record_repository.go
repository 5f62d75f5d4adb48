package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
	"github.com/yigit/kursverwaltung/internal/pkg/logger"
)

// RecordRepository gives typed access to the records of one app
type RecordRepository[F any] struct {
	store RecordStore
	appID string
	name  string
}

// NewRecordRepository creates a repository for appID. name is used in logs and errors.
func NewRecordRepository[F any](store RecordStore, appID, name string) *RecordRepository[F] {
	return &RecordRepository[F]{store: store, appID: appID, name: name}
}

// AppID returns the app the repository reads from
func (r *RecordRepository[F]) AppID() string {
	return r.appID
}

// RecordURL returns the reference URL of a record of this app
func (r *RecordRepository[F]) RecordURL(recordID string) string {
	return r.store.RecordURL(r.appID, recordID)
}

// List returns all records. Records whose fields cannot be decoded are
// logged and left out so the rest of the collection still renders.
func (r *RecordRepository[F]) List(ctx context.Context) ([]models.Record[F], error) {
	raw, err := r.store.ListRecords(ctx, r.appID)
	if err != nil {
		logger.Error().Err(err).Str("entity", r.name).Msg("Error listing records")
		return nil, fmt.Errorf("error listing %s: %w", r.name, err)
	}

	records := make([]models.Record[F], 0, len(raw))
	for i := range raw {
		rec, err := r.decode(&raw[i])
		if err != nil {
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

// Get returns one record
func (r *RecordRepository[F]) Get(ctx context.Context, recordID string) (*models.Record[F], error) {
	raw, err := r.store.GetRecord(ctx, r.appID, recordID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRecordNotFound) {
			logger.Error().Err(err).Str("entity", r.name).Str("recordID", recordID).Msg("Error getting record")
		}
		return nil, fmt.Errorf("error getting %s %s: %w", r.name, recordID, err)
	}
	return r.decode(raw)
}

// Create stores a new record and returns its id
func (r *RecordRepository[F]) Create(ctx context.Context, fields interface{}) (string, error) {
	id, err := r.store.CreateRecord(ctx, r.appID, fields)
	if err != nil {
		logger.Error().Err(err).Str("entity", r.name).Msg("Error creating record")
		return "", fmt.Errorf("error creating %s: %w", r.name, err)
	}
	return id, nil
}

// Update changes the given fields of a record
func (r *RecordRepository[F]) Update(ctx context.Context, recordID string, fields interface{}) error {
	if err := r.store.UpdateRecord(ctx, r.appID, recordID, fields); err != nil {
		if !errors.Is(err, apperrors.ErrRecordNotFound) {
			logger.Error().Err(err).Str("entity", r.name).Str("recordID", recordID).Msg("Error updating record")
		}
		return fmt.Errorf("error updating %s %s: %w", r.name, recordID, err)
	}
	return nil
}

// Delete removes a record
func (r *RecordRepository[F]) Delete(ctx context.Context, recordID string) error {
	if err := r.store.DeleteRecord(ctx, r.appID, recordID); err != nil {
		if !errors.Is(err, apperrors.ErrRecordNotFound) {
			logger.Error().Err(err).Str("entity", r.name).Str("recordID", recordID).Msg("Error deleting record")
		}
		return fmt.Errorf("error deleting %s %s: %w", r.name, recordID, err)
	}
	return nil
}

func (r *RecordRepository[F]) decode(raw *livingapps.Record) (*models.Record[F], error) {
	rec := &models.Record[F]{
		RecordID:  raw.ID,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	if len(raw.Fields) > 0 {
		if err := json.Unmarshal(raw.Fields, &rec.Fields); err != nil {
			logger.Error().Err(err).Str("entity", r.name).Str("recordID", raw.ID).Msg("Error decoding record fields")
			return nil, fmt.Errorf("error decoding %s %s: %w", r.name, raw.ID, errors.Join(apperrors.ErrUpstream, err))
		}
	}
	return rec, nil
}
