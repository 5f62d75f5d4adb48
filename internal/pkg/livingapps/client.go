// Package livingapps is a small client for the LivingApps record REST API.
//
// Every app is a collection of records addressed by a 24 character hex id.
// Records carry a free-form "fields" object; references between apps are
// stored as record URLs (see RecordURL and ExtractRecordID).
package livingapps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
)

const maxErrorBody = 2048

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Record is a record as delivered by the service. Fields stays raw so the
// caller decides the concrete type.
type Record struct {
	ID        string          `json:"id"`
	CreatedAt string          `json:"createdat,omitempty"`
	UpdatedAt string          `json:"updatedat,omitempty"`
	Fields    json.RawMessage `json:"fields"`
}

// APIError is returned for unexpected HTTP status codes.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("livingapps: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return apperrors.ErrUpstream
}

// Client talks to the LivingApps REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a new Client
func NewClient(cfg Config, lgr zerolog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("livingapps: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("livingapps: invalid base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  lgr.With().Str("component", "livingapps").Logger(),
	}, nil
}

// BaseURL returns the base URL without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RecordURL builds the reference URL of a record
func (c *Client) RecordURL(appID, recordID string) string {
	return RecordURL(c.baseURL, appID, recordID)
}

// ListRecords returns all records of an app, oldest first.
func (c *Client) ListRecords(ctx context.Context, appID string) ([]Record, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, recordsPath(appID), nil, &raw); err != nil {
		return nil, err
	}

	records, err := decodeRecordList(raw)
	if err != nil {
		return nil, fmt.Errorf("livingapps: decode records of app %s: %w", appID, err)
	}
	return records, nil
}

// GetRecord returns a single record
func (c *Client) GetRecord(ctx context.Context, appID, recordID string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, recordPath(appID, recordID), nil, &rec); err != nil {
		return nil, err
	}
	if rec.ID == "" {
		rec.ID = recordID
	}
	return &rec, nil
}

// CreateRecord creates a record and returns its id
func (c *Client) CreateRecord(ctx context.Context, appID string, fields interface{}) (string, error) {
	var raw json.RawMessage
	resp, err := c.send(ctx, http.MethodPost, recordsPath(appID), fieldsBody{Fields: fields}, &raw)
	if err != nil {
		return "", err
	}

	if id := createdRecordID(raw, resp.Header.Get("Location")); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("livingapps: create in app %s returned no record id: %w", appID, apperrors.ErrUpstream)
}

// UpdateRecord changes the given fields of a record. Fields that are not part
// of the payload keep their value.
func (c *Client) UpdateRecord(ctx context.Context, appID, recordID string, fields interface{}) error {
	return c.do(ctx, http.MethodPatch, recordPath(appID, recordID), fieldsBody{Fields: fields}, nil)
}

// DeleteRecord removes a record
func (c *Client) DeleteRecord(ctx context.Context, appID, recordID string) error {
	return c.do(ctx, http.MethodDelete, recordPath(appID, recordID), nil, nil)
}

type fieldsBody struct {
	Fields interface{} `json:"fields"`
}

func recordsPath(appID string) string {
	return "/apps/" + url.PathEscape(appID) + "/records"
}

func recordPath(appID, recordID string) string {
	return recordsPath(appID) + "/" + url.PathEscape(recordID)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	_, err := c.send(ctx, method, path, body, out)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("livingapps: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("livingapps: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("Record service request failed")
		return nil, fmt.Errorf("livingapps: %s %s: %w", method, path, errors.Join(apperrors.ErrUpstream, err))
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Record service request")

	if resp.StatusCode == http.StatusNotFound {
		return resp, fmt.Errorf("livingapps: %s %s: %w", method, path, apperrors.ErrRecordNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, fmt.Errorf("livingapps: read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp, fmt.Errorf("livingapps: decode response: %w", err)
	}
	return resp, nil
}

// decodeRecordList accepts both the object form {"<id>": {...}} the service
// returns and a plain array of records.
func decodeRecordList(raw json.RawMessage) ([]Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Record{}, nil
	}

	var records []Record
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
	} else {
		byID := map[string]Record{}
		if err := json.Unmarshal(trimmed, &byID); err != nil {
			return nil, err
		}
		records = make([]Record, 0, len(byID))
		for id, rec := range byID {
			if rec.ID == "" {
				rec.ID = id
			}
			records = append(records, rec)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// createdRecordID finds the id of a freshly created record in the response
// body ({"id": ...}, {"url": ...} or a bare URL string) or the Location header.
func createdRecordID(raw json.RawMessage, location string) string {
	var obj struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.ID != "" {
			return obj.ID
		}
		if id := ExtractRecordID(obj.URL); id != "" {
			return id
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if id := ExtractRecordID(s); id != "" {
			return id
		}
	}

	return ExtractRecordID(location)
}
