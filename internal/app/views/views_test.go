package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

const (
	dozentRef = "https://example.test/rest/apps/d0000000000000000000d0ce/records/aaaaaaaaaaaaaaaaaaaaaaaa"
	raumRef   = "https://example.test/rest/apps/a0000000000000000000ae00/records/bbbbbbbbbbbbbbbbbbbbbbbb"
)

func render(t *testing.T, page *Page) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, PageTemplate, page))
	return buf.String()
}

func sampleDashboard() *services.Dashboard {
	preis := 99.5
	return services.NewDashboard(
		[]models.Dozent{{RecordID: "aaaaaaaaaaaaaaaaaaaaaaaa", Fields: models.DozentFields{Name: "Ada", Email: "ada@example.de"}}},
		[]models.Raum{{RecordID: "bbbbbbbbbbbbbbbbbbbbbbbb", Fields: models.RaumFields{Raumname: "101", Gebaeude: "Haus A", Kapazitaet: 12}}},
		nil,
		[]models.Kurs{{RecordID: "cccccccccccccccccccccccc", Fields: models.KursFields{
			Titel: "Go <Basics>", Startdatum: "2024-07-01", Enddatum: "2024-07-03",
			MaxTeilnehmer: 10, Preis: &preis, Dozent: dozentRef, Raum: raumRef,
		}}},
		nil,
	)
}

func TestTabOrDefault(t *testing.T) {
	assert.Equal(t, "raeume", TabOrDefault("raeume"))
	assert.Equal(t, DefaultTab, TabOrDefault(""))
	assert.Equal(t, DefaultTab, TabOrDefault("../etc"))
}

func TestRenderKurseTab(t *testing.T) {
	body := render(t, NewPage(sampleDashboard(), now, "kurse"))

	assert.Contains(t, body, "Go &lt;Basics&gt;")
	assert.Contains(t, body, "01.07.2024")
	assert.Contains(t, body, "99,50 €")
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "101 (Haus A)")
	assert.Contains(t, body, "1 bevorstehend")
	assert.NotContains(t, body, "Keine Kurse")
	assert.NotContains(t, body, `class="overlay"`)
}

func TestRenderEveryTab(t *testing.T) {
	for _, tab := range Tabs {
		t.Run(tab.Key, func(t *testing.T) {
			body := render(t, NewPage(sampleDashboard(), now, tab.Key))
			assert.Contains(t, body, `class="active">`+tab.Label+`</a>`)
		})
	}
}

func TestRenderLoadErrorsAndFlash(t *testing.T) {
	d := services.NewDashboard(nil, nil, nil, nil, nil)
	d.LoadErrors = []string{"Räume", "Kurse"}
	page := NewPage(d, now, "raeume")
	page.Flash = "Der Datenspeicher ist nicht erreichbar."

	body := render(t, page)
	assert.Contains(t, body, "Folgende Daten konnten nicht geladen werden: Räume, Kurse.")
	assert.Contains(t, body, "Der Datenspeicher ist nicht erreichbar.")
}

func TestRenderFormDialogWithErrors(t *testing.T) {
	page := NewPage(sampleDashboard(), now, "kurse")
	page.Dialog = &Dialog{
		Kind:   DialogForm,
		Entity: "kurse",
		Title:  "Neuer Kurs",
		Action: "/kurse",
		Values: dto.KursForm{Titel: "Rust", DozentID: "aaaaaaaaaaaaaaaaaaaaaaaa", MaxTeilnehmer: "zehn"},
		Errors: map[string]string{"max_teilnehmer": "Bitte eine ganze Zahl angeben"},
	}

	body := render(t, page)
	assert.Contains(t, body, "Neuer Kurs")
	assert.Contains(t, body, `action="/kurse"`)
	assert.Contains(t, body, `value="Rust"`)
	assert.Contains(t, body, `value="zehn"`)
	assert.Contains(t, body, "Bitte eine ganze Zahl angeben")
	assert.Contains(t, body, `value="aaaaaaaaaaaaaaaaaaaaaaaa" selected`)
}

func TestRenderConfirmDialog(t *testing.T) {
	page := NewPage(sampleDashboard(), now, "raeume")
	page.Dialog = &Dialog{
		Kind:        DialogConfirm,
		Entity:      "raeume",
		Title:       "Raum löschen",
		Action:      "/raeume/bbbbbbbbbbbbbbbbbbbbbbbb/delete",
		Description: "Möchten Sie diesen Raum wirklich löschen?",
	}

	body := render(t, page)
	assert.Contains(t, body, "Raum löschen")
	assert.Contains(t, body, `action="/raeume/bbbbbbbbbbbbbbbbbbbbbbbb/delete"`)
	assert.Contains(t, body, "Möchten Sie diesen Raum wirklich löschen?")
}
