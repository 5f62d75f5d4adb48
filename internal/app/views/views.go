// Package views renders the dashboard pages.
package views

import (
	"embed"
	"html/template"
	"strconv"
	"time"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/pkg/helpers"
)

//go:embed templates/*.html
var files embed.FS

// PageTemplate is the name of the dashboard page template
const PageTemplate = "page"

// Tab is one entry of the tab bar
type Tab struct {
	Key   string
	Label string
}

// Tabs lists the tabs in display order
var Tabs = []Tab{
	{Key: "kurse", Label: "Kurse"},
	{Key: "dozenten", Label: "Dozenten"},
	{Key: "teilnehmer", Label: "Teilnehmer"},
	{Key: "raeume", Label: "Räume"},
	{Key: "anmeldungen", Label: "Anmeldungen"},
}

// DefaultTab is shown when no or an unknown tab is requested
const DefaultTab = "kurse"

// TabOrDefault returns tab when it is known, DefaultTab otherwise
func TabOrDefault(tab string) string {
	for _, t := range Tabs {
		if t.Key == tab {
			return tab
		}
	}
	return DefaultTab
}

// Dialog kinds
const (
	DialogForm    = "form"
	DialogConfirm = "confirm"
)

// Dialog is a modal rendered on top of the page
type Dialog struct {
	Kind   string
	Entity string
	Title  string
	// Action is the URL the dialog posts to
	Action string
	// Values holds the current form input
	Values interface{}
	// Errors holds per-field messages keyed by form field name
	Errors map[string]string
	// Message is shown above the form, e.g. when saving failed
	Message     string
	Description string
}

// Page is the data of the dashboard page
type Page struct {
	Dashboard *services.Dashboard
	Stats     dto.DashboardStats
	Tab       string
	Tabs      []Tab
	Dialog    *Dialog
	// Flash is shown as an error banner
	Flash string
}

// NewPage builds the page data for tab
func NewPage(d *services.Dashboard, now time.Time, tab string) *Page {
	return &Page{
		Dashboard: d,
		Stats:     d.Stats(now),
		Tab:       TabOrDefault(tab),
		Tabs:      Tabs,
	}
}

// Funcs are the helpers available in templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate":  helpers.FormatDate,
		"formatPrice": helpers.FormatPrice,
		"formatEUR":   helpers.FormatEUR,
		"orDash":      helpers.OrPlaceholder,
		"percent": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 1, 64)
		},
	}
}

// Templates parses the embedded templates
func Templates() (*template.Template, error) {
	return template.New(PageTemplate).Funcs(Funcs()).ParseFS(files, "templates/*.html")
}
