package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/dberrors"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
	"github.com/yigit/kursverwaltung/internal/pkg/logger"
)

const (
	recordsTable      = "records"
	recordsPrimaryKey = "records_pkey"
	maxInsertAttempts = 3
)

// PostgresRecordStore stores records as JSONB rows, one table for all apps
type PostgresRecordStore struct {
	db      *pgxpool.Pool
	sb      squirrel.StatementBuilderType
	baseURL string
}

// NewPostgresRecordStore creates a new PostgresRecordStore. baseURL is used for reference URLs.
func NewPostgresRecordStore(db *pgxpool.Pool, baseURL string) *PostgresRecordStore {
	return &PostgresRecordStore{
		db:      db,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		baseURL: baseURL,
	}
}

// RecordURL builds a reference URL
func (s *PostgresRecordStore) RecordURL(appID, recordID string) string {
	return livingapps.RecordURL(s.baseURL, appID, recordID)
}

// ListRecords returns all records of an app, oldest first
func (s *PostgresRecordStore) ListRecords(ctx context.Context, appID string) ([]livingapps.Record, error) {
	sql, args, err := s.listRecordsQuery(appID).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list records SQL")
		return nil, fmt.Errorf("failed to build list records query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("appID", appID).Msg("Error executing list records query")
		return nil, fmt.Errorf("error querying records: %w", err)
	}
	defer rows.Close()

	records := []livingapps.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			logger.Error().Err(err).Str("appID", appID).Msg("Error scanning record row")
			return nil, fmt.Errorf("error scanning record row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating record rows")
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}

	return records, nil
}

// GetRecord returns a single record
func (s *PostgresRecordStore) GetRecord(ctx context.Context, appID, recordID string) (*livingapps.Record, error) {
	sql, args, err := s.getRecordQuery(appID, recordID).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get record SQL")
		return nil, fmt.Errorf("failed to build get record query: %w", err)
	}

	rec, err := scanRecord(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		logger.Error().Err(err).Str("recordID", recordID).Msg("Error scanning record row")
		return nil, fmt.Errorf("error getting record: %w", err)
	}
	return rec, nil
}

// CreateRecord inserts a new record and returns its generated id
func (s *PostgresRecordStore) CreateRecord(ctx context.Context, appID string, fields interface{}) (string, error) {
	values, err := fieldMap(fields)
	if err != nil {
		return "", err
	}
	dropNulls(values)
	payload, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode fields: %w", err)
	}

	for attempt := 1; ; attempt++ {
		id := newRecordID()
		sql, args, err := s.insertRecordQuery(appID, id, payload).ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create record SQL")
			return "", fmt.Errorf("failed to build create record query: %w", err)
		}

		_, err = s.db.Exec(ctx, sql, args...)
		if err == nil {
			return id, nil
		}
		if dberrors.IsDuplicateConstraintError(err, recordsPrimaryKey) && attempt < maxInsertAttempts {
			continue
		}
		if dberrors.IsDuplicateConstraintError(err, recordsPrimaryKey) {
			return "", apperrors.NewConflictError("could not allocate a record id")
		}
		logger.Error().Err(err).Str("appID", appID).Msg("Error executing create record query")
		return "", fmt.Errorf("error creating record: %w", err)
	}
}

// UpdateRecord merges fields into the stored JSON. Keys set to null are removed.
func (s *PostgresRecordStore) UpdateRecord(ctx context.Context, appID, recordID string, fields interface{}) error {
	values, err := fieldMap(fields)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}

	sql, args, err := s.updateRecordQuery(appID, recordID, payload).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update record SQL")
		return fmt.Errorf("failed to build update record query: %w", err)
	}

	cmdTag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("recordID", recordID).Msg("Error executing update record query")
		return fmt.Errorf("error updating record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

// DeleteRecord removes a record
func (s *PostgresRecordStore) DeleteRecord(ctx context.Context, appID, recordID string) error {
	sql, args, err := s.deleteRecordQuery(appID, recordID).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete record SQL")
		return fmt.Errorf("failed to build delete record query: %w", err)
	}

	cmdTag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("recordID", recordID).Msg("Error executing delete record query")
		return fmt.Errorf("error deleting record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (s *PostgresRecordStore) listRecordsQuery(appID string) squirrel.SelectBuilder {
	return s.sb.Select("record_id", "fields", "created_at", "updated_at").
		From(recordsTable).
		Where(squirrel.Eq{"app_id": appID}).
		OrderBy("created_at ASC", "record_id ASC")
}

func (s *PostgresRecordStore) getRecordQuery(appID, recordID string) squirrel.SelectBuilder {
	return s.sb.Select("record_id", "fields", "created_at", "updated_at").
		From(recordsTable).
		Where(squirrel.Eq{"app_id": appID, "record_id": recordID}).
		Limit(1)
}

func (s *PostgresRecordStore) insertRecordQuery(appID, recordID string, payload []byte) squirrel.InsertBuilder {
	return s.sb.Insert(recordsTable).
		Columns("app_id", "record_id", "fields").
		Values(appID, recordID, payload)
}

// updateRecordQuery merges payload into the stored object; null values drop the key
func (s *PostgresRecordStore) updateRecordQuery(appID, recordID string, payload []byte) squirrel.UpdateBuilder {
	return s.sb.Update(recordsTable).
		Set("fields", squirrel.Expr("jsonb_strip_nulls(fields || ?::jsonb)", payload)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"app_id": appID, "record_id": recordID})
}

func (s *PostgresRecordStore) deleteRecordQuery(appID, recordID string) squirrel.DeleteBuilder {
	return s.sb.Delete(recordsTable).
		Where(squirrel.Eq{"app_id": appID, "record_id": recordID})
}

func scanRecord(row pgx.Row) (*livingapps.Record, error) {
	var (
		rec       livingapps.Record
		fields    []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&rec.ID, &fields, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.Fields = fields
	rec.CreatedAt = createdAt.UTC().Format(recordTimeLayout)
	rec.UpdatedAt = updatedAt.UTC().Format(recordTimeLayout)
	return &rec, nil
}
