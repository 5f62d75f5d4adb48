package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/helpers"
)

// saveFunc stores the bound form; id is empty on create
type saveFunc func(ctx context.Context, id string) error

// entityPage describes the dialogs of one tab
type entityPage struct {
	tab         string
	newTitle    string
	editTitle   string
	deleteTitle string
	deleteText  string
	// blank returns the values of an empty create form
	blank func(now time.Time) interface{}
	// load returns the form values of a stored record
	load func(ctx context.Context, id string) (interface{}, error)
	// bind reads the posted form. parseErrs holds fields that could not be converted.
	bind   func(c *gin.Context) (values interface{}, save saveFunc, parseErrs map[string]string, err error)
	remove func(ctx context.Context, id string) error
	// blocked returns a notice when records cannot be created yet
	blocked func(d *services.Dashboard) string
}

func noNotice(*services.Dashboard) string { return "" }

// mergeFieldErrors adds the field errors of err to parseErrs. A field that
// could not be parsed keeps its parse message.
func mergeFieldErrors(err error, parseErrs map[string]string) map[string]string {
	for field, msg := range apperrors.FieldErrors(err) {
		if _, ok := parseErrs[field]; !ok {
			parseErrs[field] = msg
		}
	}
	return parseErrs
}

func newEntityPages(svc *services.Services) map[string]*entityPage {
	pages := []*entityPage{
		{
			tab:         "dozenten",
			newTitle:    "Neuer Dozent",
			editTitle:   "Dozent bearbeiten",
			deleteTitle: "Dozent löschen",
			deleteText:  "Möchten Sie diesen Dozenten wirklich löschen? Diese Aktion kann nicht rückgängig gemacht werden.",
			blank:       func(time.Time) interface{} { return dto.DozentRequest{} },
			load: func(ctx context.Context, id string) (interface{}, error) {
				d, err := svc.Dozenten.Get(ctx, id)
				return dto.NewDozentRequest(d), err
			},
			bind: func(c *gin.Context) (interface{}, saveFunc, map[string]string, error) {
				var req dto.DozentRequest
				if err := c.ShouldBind(&req); err != nil {
					return req, nil, nil, err
				}
				return req, func(ctx context.Context, id string) error {
					if id == "" {
						_, err := svc.Dozenten.Create(ctx, req)
						return err
					}
					_, err := svc.Dozenten.Update(ctx, id, req)
					return err
				}, nil, nil
			},
			remove:  svc.Dozenten.Delete,
			blocked: noNotice,
		},
		{
			tab:         "raeume",
			newTitle:    "Neuer Raum",
			editTitle:   "Raum bearbeiten",
			deleteTitle: "Raum löschen",
			deleteText:  "Möchten Sie diesen Raum wirklich löschen? Diese Aktion kann nicht rückgängig gemacht werden.",
			blank:       func(time.Time) interface{} { return dto.RaumForm{} },
			load: func(ctx context.Context, id string) (interface{}, error) {
				r, err := svc.Raeume.Get(ctx, id)
				return dto.NewRaumForm(r), err
			},
			bind: func(c *gin.Context) (interface{}, saveFunc, map[string]string, error) {
				var form dto.RaumForm
				if err := c.ShouldBind(&form); err != nil {
					return form, nil, nil, err
				}
				req, parseErrs := form.Request()
				if len(parseErrs) > 0 {
					return form, nil, mergeFieldErrors(svc.Raeume.Validate(c, req), parseErrs), nil
				}
				return form, func(ctx context.Context, id string) error {
					if id == "" {
						_, err := svc.Raeume.Create(ctx, req)
						return err
					}
					_, err := svc.Raeume.Update(ctx, id, req)
					return err
				}, parseErrs, nil
			},
			remove:  svc.Raeume.Delete,
			blocked: noNotice,
		},
		{
			tab:         "teilnehmer",
			newTitle:    "Neuer Teilnehmer",
			editTitle:   "Teilnehmer bearbeiten",
			deleteTitle: "Teilnehmer löschen",
			deleteText:  "Möchten Sie diesen Teilnehmer wirklich löschen? Diese Aktion kann nicht rückgängig gemacht werden.",
			blank:       func(time.Time) interface{} { return dto.TeilnehmerRequest{} },
			load: func(ctx context.Context, id string) (interface{}, error) {
				t, err := svc.Teilnehmer.Get(ctx, id)
				return dto.NewTeilnehmerRequest(t), err
			},
			bind: func(c *gin.Context) (interface{}, saveFunc, map[string]string, error) {
				var req dto.TeilnehmerRequest
				if err := c.ShouldBind(&req); err != nil {
					return req, nil, nil, err
				}
				return req, func(ctx context.Context, id string) error {
					if id == "" {
						_, err := svc.Teilnehmer.Create(ctx, req)
						return err
					}
					_, err := svc.Teilnehmer.Update(ctx, id, req)
					return err
				}, nil, nil
			},
			remove:  svc.Teilnehmer.Delete,
			blocked: noNotice,
		},
		{
			tab:         "kurse",
			newTitle:    "Neuer Kurs",
			editTitle:   "Kurs bearbeiten",
			deleteTitle: "Kurs löschen",
			deleteText:  "Möchten Sie diesen Kurs wirklich löschen? Alle zugehörigen Anmeldungen bleiben bestehen.",
			blank:       func(time.Time) interface{} { return dto.KursForm{} },
			load: func(ctx context.Context, id string) (interface{}, error) {
				k, err := svc.Kurse.Get(ctx, id)
				return dto.NewKursForm(k), err
			},
			bind: func(c *gin.Context) (interface{}, saveFunc, map[string]string, error) {
				var form dto.KursForm
				if err := c.ShouldBind(&form); err != nil {
					return form, nil, nil, err
				}
				req, parseErrs := form.Request()
				if len(parseErrs) > 0 {
					return form, nil, mergeFieldErrors(svc.Kurse.Validate(c, req), parseErrs), nil
				}
				return form, func(ctx context.Context, id string) error {
					if id == "" {
						_, err := svc.Kurse.Create(ctx, req)
						return err
					}
					_, err := svc.Kurse.Update(ctx, id, req)
					return err
				}, parseErrs, nil
			},
			remove:  svc.Kurse.Delete,
			blocked: (*services.Dashboard).KursNotice,
		},
		{
			tab:         "anmeldungen",
			newTitle:    "Neue Anmeldung",
			editTitle:   "Anmeldung bearbeiten",
			deleteTitle: "Anmeldung löschen",
			deleteText:  "Möchten Sie diese Anmeldung wirklich löschen? Diese Aktion kann nicht rückgängig gemacht werden.",
			blank: func(now time.Time) interface{} {
				return dto.AnmeldungRequest{Anmeldedatum: helpers.Today(now)}
			},
			load: func(ctx context.Context, id string) (interface{}, error) {
				a, err := svc.Anmeldungen.Get(ctx, id)
				return dto.NewAnmeldungRequest(a), err
			},
			bind: func(c *gin.Context) (interface{}, saveFunc, map[string]string, error) {
				var req dto.AnmeldungRequest
				if err := c.ShouldBind(&req); err != nil {
					return req, nil, nil, err
				}
				return req, func(ctx context.Context, id string) error {
					if id == "" {
						_, err := svc.Anmeldungen.Create(ctx, req)
						return err
					}
					_, err := svc.Anmeldungen.Update(ctx, id, req)
					return err
				}, nil, nil
			},
			remove:  svc.Anmeldungen.Delete,
			blocked: (*services.Dashboard).AnmeldungNotice,
		},
	}

	byTab := make(map[string]*entityPage, len(pages))
	for _, p := range pages {
		byTab[p.tab] = p
	}
	return byTab
}
