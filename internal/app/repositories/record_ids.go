package repositories

import (
	"strings"

	"github.com/google/uuid"
)

// newRecordID returns a 24 character hex id in the format LivingApps uses
func newRecordID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}
