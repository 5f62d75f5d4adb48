package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of all date fields (startdatum, enddatum, anmeldedatum, geburtsdatum)
const DateLayout = "2006-01-02"

// Record is a LivingApps record with typed fields
type Record[F any] struct {
	RecordID  string `json:"record_id" example:"65a1b2c3d4e5f60718293a4b"`
	CreatedAt string `json:"createdat,omitempty" example:"2024-01-15T10:00:00"`
	UpdatedAt string `json:"updatedat,omitempty" example:"2024-01-16T08:30:00"`
	Fields    F      `json:"fields"`
}

// ParseDate parses a date field. LivingApps may append a time part
// ("2024-03-01T09:00"), which is ignored.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if len(value) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, value[:len(DateLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Count is a whole-number field. The record service may store it as a float
// ("30.0", 12.5) or as a numeric string; those are rounded to the nearest int.
type Count int

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s == "" {
			*c = 0
			return nil
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("invalid count %s", data)
	}
	*c = Count(math.Round(f))
	return nil
}
