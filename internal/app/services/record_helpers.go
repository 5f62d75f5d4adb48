package services

import (
	"encoding/json"
	"fmt"

	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
	"github.com/yigit/kursverwaltung/internal/pkg/validation"
)

// checkRecordID rejects ids that cannot be LivingApps record ids
func checkRecordID(id string) error {
	if !livingapps.IsRecordID(id) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidRecordID, id)
	}
	return nil
}

// validate runs the tag based validation of req and then the extra checks,
// collecting everything into one ValidationError.
func validate(req interface{}, extra ...func(*apperrors.ValidationError)) error {
	verr := apperrors.NewValidationError()
	if err := validation.Struct(req); err != nil {
		fields := apperrors.FieldErrors(err)
		if fields == nil {
			return err
		}
		for field, msg := range fields {
			verr.Add(field, msg)
		}
	}
	for _, check := range extra {
		check(verr)
	}
	return verr.OrNil()
}

// updatePayload turns typed fields into the body of a merge update. Optional
// keys that are empty (and therefore omitted) are sent as null so the stored
// value is cleared.
func updatePayload(fields interface{}, optional ...string) (map[string]interface{}, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("error encoding fields: %w", err)
	}
	payload := map[string]interface{}{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("error encoding fields: %w", err)
	}
	for _, key := range optional {
		if _, ok := payload[key]; !ok {
			payload[key] = nil
		}
	}
	return payload, nil
}
