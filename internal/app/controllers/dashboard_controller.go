package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/app/views"
	"github.com/yigit/kursverwaltung/internal/middleware"
	"github.com/yigit/kursverwaltung/internal/pkg/apperrors"
	"github.com/yigit/kursverwaltung/internal/pkg/logger"
)

// DashboardController renders the HTML dashboard and handles its forms.
// Every successful write redirects to the tab it came from, which reloads
// all collections.
type DashboardController struct {
	services *services.Services
	pages    map[string]*entityPage
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(svc *services.Services) *DashboardController {
	return &DashboardController{
		services: svc,
		pages:    newEntityPages(svc),
	}
}

// Tabs returns the tabs that have dialogs, for route registration
func (c *DashboardController) Tabs() []string {
	tabs := make([]string, 0, len(views.Tabs))
	for _, t := range views.Tabs {
		if _, ok := c.pages[t.Key]; ok {
			tabs = append(tabs, t.Key)
		}
	}
	return tabs
}

// Index renders the dashboard
func (c *DashboardController) Index(ctx *gin.Context) {
	page := c.page(ctx, ctx.Query("tab"))
	ctx.HTML(http.StatusOK, views.PageTemplate, page)
}

// NewForm renders the create dialog of tab
func (c *DashboardController) NewForm(tab string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ep := c.pages[tab]
		page := c.page(ctx, tab)
		page.Dialog = &views.Dialog{
			Kind:   views.DialogForm,
			Entity: tab,
			Title:  ep.newTitle,
			Action: "/" + tab,
			Values: ep.blank(c.services.Dashboard.Now()),
		}
		if notice := ep.blocked(page.Dashboard); notice != "" {
			page.Dialog.Message = notice
		}
		ctx.HTML(http.StatusOK, views.PageTemplate, page)
	}
}

// EditForm renders the edit dialog of a record
func (c *DashboardController) EditForm(tab string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ep := c.pages[tab]
		id := ctx.Param("id")

		values, err := ep.load(ctx, id)
		if err != nil {
			c.renderFlash(ctx, tab, err)
			return
		}

		page := c.page(ctx, tab)
		page.Dialog = &views.Dialog{
			Kind:   views.DialogForm,
			Entity: tab,
			Title:  ep.editTitle,
			Action: "/" + tab + "/" + id,
			Values: values,
		}
		ctx.HTML(http.StatusOK, views.PageTemplate, page)
	}
}

// Submit handles the create (no id) and edit dialogs of tab
func (c *DashboardController) Submit(tab string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ep := c.pages[tab]
		id := ctx.Param("id")

		dialog := &views.Dialog{
			Kind:   views.DialogForm,
			Entity: tab,
			Title:  ep.newTitle,
			Action: "/" + tab,
		}
		if id != "" {
			dialog.Title = ep.editTitle
			dialog.Action = "/" + tab + "/" + id
		}

		values, save, parseErrs, err := ep.bind(ctx)
		dialog.Values = values
		if err != nil {
			dialog.Message = "Die Eingaben konnten nicht gelesen werden."
			c.renderDialog(ctx, http.StatusBadRequest, tab, dialog)
			return
		}
		if len(parseErrs) > 0 {
			dialog.Errors = parseErrs
			c.renderDialog(ctx, http.StatusUnprocessableEntity, tab, dialog)
			return
		}

		if err := save(ctx, id); err != nil {
			status, _ := middleware.ErrorDetailFor(err)
			dialog.Errors = apperrors.FieldErrors(err)
			if dialog.Errors == nil {
				dialog.Message = userMessage(err)
			}
			c.renderDialog(ctx, status, tab, dialog)
			return
		}

		logger.Info().Str("tab", tab).Str("id", id).Msg("Record saved")
		ctx.Redirect(http.StatusSeeOther, "/?tab="+tab)
	}
}

// ConfirmDelete renders the delete confirmation of a record
func (c *DashboardController) ConfirmDelete(tab string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		page := c.page(ctx, tab)
		page.Dialog = c.confirmDialog(tab, ctx.Param("id"))
		ctx.HTML(http.StatusOK, views.PageTemplate, page)
	}
}

// Delete removes a record. Related records are left untouched.
func (c *DashboardController) Delete(tab string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ep := c.pages[tab]
		id := ctx.Param("id")

		if err := ep.remove(ctx, id); err != nil {
			status, _ := middleware.ErrorDetailFor(err)
			dialog := c.confirmDialog(tab, id)
			dialog.Message = userMessage(err)
			c.renderDialog(ctx, status, tab, dialog)
			return
		}

		logger.Info().Str("tab", tab).Str("id", id).Msg("Record deleted")
		ctx.Redirect(http.StatusSeeOther, "/?tab="+tab)
	}
}

// TogglePaid flips the paid flag of an enrollment
func (c *DashboardController) TogglePaid(ctx *gin.Context) {
	if _, err := c.services.Anmeldungen.TogglePaid(ctx, ctx.Param("id")); err != nil {
		c.renderFlash(ctx, "anmeldungen", err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/?tab=anmeldungen")
}

// Stats returns the stat card figures as JSON
// @Summary Dashboard figures
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Router /dashboard [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	d := c.services.Dashboard.Load(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DashboardResponse{
		Stats:      d.Stats(c.services.Dashboard.Now()),
		LoadErrors: d.LoadErrors,
	}, ""))
}

func (c *DashboardController) page(ctx *gin.Context, tab string) *views.Page {
	d := c.services.Dashboard.Load(ctx)
	return views.NewPage(d, c.services.Dashboard.Now(), tab)
}

func (c *DashboardController) confirmDialog(tab, id string) *views.Dialog {
	ep := c.pages[tab]
	return &views.Dialog{
		Kind:        views.DialogConfirm,
		Entity:      tab,
		Title:       ep.deleteTitle,
		Action:      "/" + tab + "/" + id + "/delete",
		Description: ep.deleteText,
	}
}

func (c *DashboardController) renderDialog(ctx *gin.Context, status int, tab string, dialog *views.Dialog) {
	page := c.page(ctx, tab)
	page.Dialog = dialog
	ctx.HTML(status, views.PageTemplate, page)
}

func (c *DashboardController) renderFlash(ctx *gin.Context, tab string, err error) {
	status, _ := middleware.ErrorDetailFor(err)
	page := c.page(ctx, tab)
	page.Flash = userMessage(err)
	ctx.HTML(status, views.PageTemplate, page)
}

// userMessage is the German text shown for a failed write
func userMessage(err error) string {
	var customErr *apperrors.CustomError
	switch {
	case errors.Is(err, apperrors.ErrMissingPrerequisite) && errors.As(err, &customErr):
		return customErr.Error()
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return "Der Eintrag wurde nicht gefunden. Möglicherweise wurde er bereits gelöscht."
	case errors.Is(err, apperrors.ErrBadRequest):
		return "Ungültige Anfrage."
	case errors.Is(err, apperrors.ErrUpstream):
		return "Der Datenspeicher ist nicht erreichbar. Bitte versuchen Sie es später erneut."
	default:
		return "Beim Speichern ist ein Fehler aufgetreten. Bitte versuchen Sie es erneut."
	}
}
