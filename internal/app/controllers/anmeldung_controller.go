package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/middleware"
)

// AnmeldungController handles the JSON API of enrollments
type AnmeldungController struct {
	service services.AnmeldungService
}

// NewAnmeldungController creates a new AnmeldungController
func NewAnmeldungController(service services.AnmeldungService) *AnmeldungController {
	return &AnmeldungController{service: service}
}

// List returns all enrollments
// @Summary List enrollments
// @Tags anmeldungen
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Anmeldung}
// @Failure 502 {object} dto.ErrorResponse "Record service unavailable"
// @Router /anmeldungen [get]
func (c *AnmeldungController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, items)
}

// Get returns one record
// @Summary Get a record
// @Tags anmeldungen
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.Anmeldung}
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /anmeldungen/{id} [get]
func (c *AnmeldungController) Get(ctx *gin.Context) {
	item, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}

// Create stores a new record
// @Summary Create a record
// @Tags anmeldungen
// @Accept json
// @Produce json
// @Param request body dto.AnmeldungRequest true "Fields"
// @Success 201 {object} dto.APIResponse{data=models.Anmeldung}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /anmeldungen [post]
func (c *AnmeldungController) Create(ctx *gin.Context) {
	var req dto.AnmeldungRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Anmeldung erstellt"))
}

// Update replaces the fields of a record
// @Summary Update a record
// @Tags anmeldungen
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.AnmeldungRequest true "Fields"
// @Success 200 {object} dto.APIResponse{data=models.Anmeldung}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /anmeldungen/{id} [put]
func (c *AnmeldungController) Update(ctx *gin.Context) {
	var req dto.AnmeldungRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Update(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Anmeldung aktualisiert"))
}

// Delete removes a record
// @Summary Delete a record
// @Tags anmeldungen
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /anmeldungen/{id} [delete]
func (c *AnmeldungController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Anmeldung gelöscht"}, ""))
}

// SetPaid changes the paid flag only. Without a value in the body the flag is toggled.
// @Summary Set or toggle the paid flag
// @Tags anmeldungen
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.BezahltRequest false "New value"
// @Success 200 {object} dto.APIResponse{data=models.Anmeldung}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /anmeldungen/{id}/bezahlt [patch]
func (c *AnmeldungController) SetPaid(ctx *gin.Context) {
	var req dto.BezahltRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.BindingError(ctx, err)
			return
		}
	}

	var (
		item *models.Anmeldung
		err  error
	)
	if req.Bezahlt == nil {
		item, err = c.service.TogglePaid(ctx, ctx.Param("id"))
	} else {
		item, err = c.service.SetPaid(ctx, ctx.Param("id"), *req.Bezahlt)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}
