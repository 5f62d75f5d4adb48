package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/middleware"
)

// RaumController handles the JSON API of rooms
type RaumController struct {
	service services.RaumService
}

// NewRaumController creates a new RaumController
func NewRaumController(service services.RaumService) *RaumController {
	return &RaumController{service: service}
}

// List returns all rooms
// @Summary List rooms
// @Tags raeume
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Raum}
// @Failure 502 {object} dto.ErrorResponse "Record service unavailable"
// @Router /raeume [get]
func (c *RaumController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, items)
}

// Get returns one record
// @Summary Get a record
// @Tags raeume
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.Raum}
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /raeume/{id} [get]
func (c *RaumController) Get(ctx *gin.Context) {
	item, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}

// Create stores a new record
// @Summary Create a record
// @Tags raeume
// @Accept json
// @Produce json
// @Param request body dto.RaumRequest true "Fields"
// @Success 201 {object} dto.APIResponse{data=models.Raum}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /raeume [post]
func (c *RaumController) Create(ctx *gin.Context) {
	var req dto.RaumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Raum erstellt"))
}

// Update replaces the fields of a record
// @Summary Update a record
// @Tags raeume
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.RaumRequest true "Fields"
// @Success 200 {object} dto.APIResponse{data=models.Raum}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /raeume/{id} [put]
func (c *RaumController) Update(ctx *gin.Context) {
	var req dto.RaumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Update(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Raum aktualisiert"))
}

// Delete removes a record
// @Summary Delete a record
// @Tags raeume
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /raeume/{id} [delete]
func (c *RaumController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Raum gelöscht"}, ""))
}
