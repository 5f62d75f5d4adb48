package services

import (
	"math"
	"strings"
	"time"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
)

// Dashboard is one snapshot of all five collections with the lookups the
// tabs need. References are resolved by the record id at the end of the URL.
type Dashboard struct {
	Dozenten    []models.Dozent
	Raeume      []models.Raum
	Teilnehmer  []models.Teilnehmer
	Kurse       []models.Kurs
	Anmeldungen []models.Anmeldung

	// LoadErrors names the collections that could not be loaded
	LoadErrors []string

	dozentByID     map[string]*models.Dozent
	raumByID       map[string]*models.Raum
	teilnehmerByID map[string]*models.Teilnehmer
	kursByID       map[string]*models.Kurs
	enrollments    map[string]int
}

// NewDashboard indexes the given collections
func NewDashboard(dozenten []models.Dozent, raeume []models.Raum, teilnehmer []models.Teilnehmer,
	kurse []models.Kurs, anmeldungen []models.Anmeldung) *Dashboard {
	d := &Dashboard{
		Dozenten:       dozenten,
		Raeume:         raeume,
		Teilnehmer:     teilnehmer,
		Kurse:          kurse,
		Anmeldungen:    anmeldungen,
		dozentByID:     make(map[string]*models.Dozent, len(dozenten)),
		raumByID:       make(map[string]*models.Raum, len(raeume)),
		teilnehmerByID: make(map[string]*models.Teilnehmer, len(teilnehmer)),
		kursByID:       make(map[string]*models.Kurs, len(kurse)),
		enrollments:    make(map[string]int),
	}
	for i := range d.Dozenten {
		d.dozentByID[d.Dozenten[i].RecordID] = &d.Dozenten[i]
	}
	for i := range d.Raeume {
		d.raumByID[d.Raeume[i].RecordID] = &d.Raeume[i]
	}
	for i := range d.Teilnehmer {
		d.teilnehmerByID[d.Teilnehmer[i].RecordID] = &d.Teilnehmer[i]
	}
	for i := range d.Kurse {
		d.kursByID[d.Kurse[i].RecordID] = &d.Kurse[i]
	}
	for _, a := range d.Anmeldungen {
		if id := livingapps.ExtractRecordID(a.Fields.Kurs); id != "" {
			d.enrollments[id]++
		}
	}
	return d
}

// DozentName resolves a dozent reference to its name, "-" when unresolvable
func (d *Dashboard) DozentName(ref string) string {
	if doz, ok := d.dozentByID[livingapps.ExtractRecordID(ref)]; ok && doz.Fields.Name != "" {
		return doz.Fields.Name
	}
	return "-"
}

// RaumLabel resolves a room reference to "raumname (gebaeude)"
func (d *Dashboard) RaumLabel(ref string) string {
	if raum, ok := d.raumByID[livingapps.ExtractRecordID(ref)]; ok {
		return raum.Fields.Raumname + " (" + raum.Fields.Gebaeude + ")"
	}
	return "-"
}

// TeilnehmerName resolves a participant reference to its name
func (d *Dashboard) TeilnehmerName(ref string) string {
	if t, ok := d.teilnehmerByID[livingapps.ExtractRecordID(ref)]; ok && t.Fields.Name != "" {
		return t.Fields.Name
	}
	return "-"
}

// KursTitel resolves a course reference to its title
func (d *Dashboard) KursTitel(ref string) string {
	if k, ok := d.kursByID[livingapps.ExtractRecordID(ref)]; ok && k.Fields.Titel != "" {
		return k.Fields.Titel
	}
	return "-"
}

// EnrollmentCount returns how many enrollments reference the course
func (d *Dashboard) EnrollmentCount(kursID string) int {
	return d.enrollments[kursID]
}

// FillPercent is the share of taken places, capped at 100. Courses without
// a maximum report 0.
func (d *Dashboard) FillPercent(k models.Kurs) float64 {
	if k.Fields.MaxTeilnehmer <= 0 {
		return 0
	}
	return math.Min(float64(d.EnrollmentCount(k.RecordID))/float64(k.Fields.MaxTeilnehmer)*100, 100)
}

// Stats computes the stat card figures. Revenue sums the price of the course
// of every paid enrollment; enrollments whose course is gone count 0.
func (d *Dashboard) Stats(now time.Time) dto.DashboardStats {
	stats := dto.DashboardStats{
		Kurse:       len(d.Kurse),
		Dozenten:    len(d.Dozenten),
		Teilnehmer:  len(d.Teilnehmer),
		Raeume:      len(d.Raeume),
		Anmeldungen: len(d.Anmeldungen),
	}
	for _, k := range d.Kurse {
		if k.Fields.IsUpcoming(now) {
			stats.KurseBevorstehend++
		}
	}
	for _, a := range d.Anmeldungen {
		if !a.Fields.Bezahlt {
			continue
		}
		stats.Bezahlt++
		if k, ok := d.kursByID[livingapps.ExtractRecordID(a.Fields.Kurs)]; ok {
			stats.Umsatz += k.Fields.PreisValue()
		}
	}
	stats.Offen = stats.Anmeldungen - stats.Bezahlt
	return stats
}

// CanCreateKurs reports whether instructors and rooms exist
func (d *Dashboard) CanCreateKurs() bool {
	return len(d.Dozenten) > 0 && len(d.Raeume) > 0
}

// CanCreateAnmeldung reports whether participants and courses exist
func (d *Dashboard) CanCreateAnmeldung() bool {
	return len(d.Teilnehmer) > 0 && len(d.Kurse) > 0
}

// KursNotice is the hint shown when courses cannot be created yet
func (d *Dashboard) KursNotice() string {
	return KursPrerequisiteNotice(len(d.Dozenten) > 0, len(d.Raeume) > 0)
}

// AnmeldungNotice is the hint shown when enrollments cannot be created yet
func (d *Dashboard) AnmeldungNotice() string {
	return AnmeldungPrerequisiteNotice(len(d.Teilnehmer) > 0, len(d.Kurse) > 0)
}

// KursPrerequisiteNotice names the missing collections, or returns "" when
// nothing is missing.
func KursPrerequisiteNotice(hasDozenten, hasRaeume bool) string {
	return prerequisiteNotice("Kurse", missing(hasDozenten, "Dozenten"), missing(hasRaeume, "Räume"))
}

// AnmeldungPrerequisiteNotice names the missing collections, or returns "".
func AnmeldungPrerequisiteNotice(hasTeilnehmer, hasKurse bool) string {
	return prerequisiteNotice("Anmeldungen", missing(hasTeilnehmer, "Teilnehmer"), missing(hasKurse, "Kurse"))
}

func missing(present bool, name string) string {
	if present {
		return ""
	}
	return name
}

func prerequisiteNotice(target string, names ...string) string {
	var parts []string
	for _, n := range names {
		if n != "" {
			parts = append(parts, n)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Bitte fügen Sie zuerst " + strings.Join(parts, " und ") +
		" hinzu, bevor Sie " + target + " erstellen können."
}
