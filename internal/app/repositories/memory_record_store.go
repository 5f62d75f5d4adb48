package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
)

type memoryRecord struct {
	seq       int64
	fields    map[string]json.RawMessage
	createdAt time.Time
	updatedAt time.Time
}

// MemoryRecordStore keeps records in process memory. It backs the "memory"
// storage driver and the tests.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	baseURL string
	seq     int64
	apps    map[string]map[string]*memoryRecord
	now     func() time.Time
}

// NewMemoryRecordStore creates an empty store. baseURL is used for reference URLs.
func NewMemoryRecordStore(baseURL string) *MemoryRecordStore {
	return &MemoryRecordStore{
		baseURL: baseURL,
		apps:    map[string]map[string]*memoryRecord{},
		now:     time.Now,
	}
}

// RecordURL builds a reference URL
func (s *MemoryRecordStore) RecordURL(appID, recordID string) string {
	return livingapps.RecordURL(s.baseURL, appID, recordID)
}

// ListRecords returns the records of an app in insertion order
func (s *MemoryRecordStore) ListRecords(_ context.Context, appID string) ([]livingapps.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]livingapps.Record, 0, len(s.apps[appID]))
	seqs := map[string]int64{}
	for id, rec := range s.apps[appID] {
		out, err := rec.toRecord(id)
		if err != nil {
			return nil, err
		}
		records = append(records, out)
		seqs[id] = rec.seq
	}
	sort.Slice(records, func(i, j int) bool { return seqs[records[i].ID] < seqs[records[j].ID] })
	return records, nil
}

// GetRecord returns a single record
func (s *MemoryRecordStore) GetRecord(_ context.Context, appID, recordID string) (*livingapps.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.apps[appID][recordID]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	out, err := rec.toRecord(recordID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRecord stores a new record
func (s *MemoryRecordStore) CreateRecord(_ context.Context, appID string, fields interface{}) (string, error) {
	values, err := fieldMap(fields)
	if err != nil {
		return "", err
	}
	dropNulls(values)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.apps[appID] == nil {
		s.apps[appID] = map[string]*memoryRecord{}
	}
	id := newRecordID()
	for _, exists := s.apps[appID][id]; exists; _, exists = s.apps[appID][id] {
		id = newRecordID()
	}

	s.seq++
	now := s.now()
	s.apps[appID][id] = &memoryRecord{seq: s.seq, fields: values, createdAt: now, updatedAt: now}
	return id, nil
}

// UpdateRecord merges fields into a record
func (s *MemoryRecordStore) UpdateRecord(_ context.Context, appID, recordID string, fields interface{}) error {
	values, err := fieldMap(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.apps[appID][recordID]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	for k, v := range values {
		rec.fields[k] = v
	}
	dropNulls(rec.fields)
	rec.updatedAt = s.now()
	return nil
}

// DeleteRecord removes a record
func (s *MemoryRecordStore) DeleteRecord(_ context.Context, appID, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[appID][recordID]; !ok {
		return apperrors.ErrRecordNotFound
	}
	delete(s.apps[appID], recordID)
	return nil
}

func (r *memoryRecord) toRecord(id string) (livingapps.Record, error) {
	data, err := json.Marshal(r.fields)
	if err != nil {
		return livingapps.Record{}, fmt.Errorf("encode fields of %s: %w", id, err)
	}
	return livingapps.Record{
		ID:        id,
		CreatedAt: r.createdAt.Format(recordTimeLayout),
		UpdatedAt: r.updatedAt.Format(recordTimeLayout),
		Fields:    data,
	}, nil
}

// recordTimeLayout matches the timestamps LivingApps returns
const recordTimeLayout = "2006-01-02T15:04:05"

// fieldMap turns any fields payload into its JSON object members
func fieldMap(fields interface{}) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: fields are not serializable: %v", apperrors.ErrBadRequest, err)
	}
	values := map[string]json.RawMessage{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: fields must be a JSON object", apperrors.ErrBadRequest)
	}
	return values, nil
}

func dropNulls(values map[string]json.RawMessage) {
	for k, v := range values {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			delete(values, k)
		}
	}
}
