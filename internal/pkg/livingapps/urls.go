package livingapps

import (
	"regexp"
	"strings"
)

var recordIDPattern = regexp.MustCompile(`(?i)([a-f0-9]{24})$`)

// RecordURL builds the reference URL stored in fields that point to another
// record: <base>/apps/<appID>/records/<recordID>.
func RecordURL(baseURL, appID, recordID string) string {
	if appID == "" || recordID == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/apps/" + appID + "/records/" + recordID
}

// ExtractRecordID returns the trailing 24 character hex id of a reference URL,
// or "" when the value does not end in one.
func ExtractRecordID(ref string) string {
	m := recordIDPattern.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return ""
	}
	return m[1]
}

// IsRecordID reports whether id is a well-formed record id
func IsRecordID(id string) bool {
	return len(id) == 24 && recordIDPattern.MatchString(id)
}
