package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/middleware"
)

// TeilnehmerController handles the JSON API of participants
type TeilnehmerController struct {
	service services.TeilnehmerService
}

// NewTeilnehmerController creates a new TeilnehmerController
func NewTeilnehmerController(service services.TeilnehmerService) *TeilnehmerController {
	return &TeilnehmerController{service: service}
}

// List returns all participants
// @Summary List participants
// @Tags teilnehmer
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Teilnehmer}
// @Failure 502 {object} dto.ErrorResponse "Record service unavailable"
// @Router /teilnehmer [get]
func (c *TeilnehmerController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, items)
}

// Get returns one record
// @Summary Get a record
// @Tags teilnehmer
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.Teilnehmer}
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /teilnehmer/{id} [get]
func (c *TeilnehmerController) Get(ctx *gin.Context) {
	item, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}

// Create stores a new record
// @Summary Create a record
// @Tags teilnehmer
// @Accept json
// @Produce json
// @Param request body dto.TeilnehmerRequest true "Fields"
// @Success 201 {object} dto.APIResponse{data=models.Teilnehmer}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /teilnehmer [post]
func (c *TeilnehmerController) Create(ctx *gin.Context) {
	var req dto.TeilnehmerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Teilnehmer erstellt"))
}

// Update replaces the fields of a record
// @Summary Update a record
// @Tags teilnehmer
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.TeilnehmerRequest true "Fields"
// @Success 200 {object} dto.APIResponse{data=models.Teilnehmer}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /teilnehmer/{id} [put]
func (c *TeilnehmerController) Update(ctx *gin.Context) {
	var req dto.TeilnehmerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Update(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Teilnehmer aktualisiert"))
}

// Delete removes a record
// @Summary Delete a record
// @Tags teilnehmer
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /teilnehmer/{id} [delete]
func (c *TeilnehmerController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Teilnehmer gelöscht"}, ""))
}
