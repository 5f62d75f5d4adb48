package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/middleware"
)

// DozentController handles the JSON API of instructors
type DozentController struct {
	service services.DozentService
}

// NewDozentController creates a new DozentController
func NewDozentController(service services.DozentService) *DozentController {
	return &DozentController{service: service}
}

// List returns all instructors
// @Summary List instructors
// @Tags dozenten
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Dozent}
// @Failure 502 {object} dto.ErrorResponse "Record service unavailable"
// @Router /dozenten [get]
func (c *DozentController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, items)
}

// Get returns one record
// @Summary Get a record
// @Tags dozenten
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.Dozent}
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /dozenten/{id} [get]
func (c *DozentController) Get(ctx *gin.Context) {
	item, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}

// Create stores a new record
// @Summary Create a record
// @Tags dozenten
// @Accept json
// @Produce json
// @Param request body dto.DozentRequest true "Fields"
// @Success 201 {object} dto.APIResponse{data=models.Dozent}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /dozenten [post]
func (c *DozentController) Create(ctx *gin.Context) {
	var req dto.DozentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Dozent erstellt"))
}

// Update replaces the fields of a record
// @Summary Update a record
// @Tags dozenten
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.DozentRequest true "Fields"
// @Success 200 {object} dto.APIResponse{data=models.Dozent}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /dozenten/{id} [put]
func (c *DozentController) Update(ctx *gin.Context) {
	var req dto.DozentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Update(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Dozent aktualisiert"))
}

// Delete removes a record
// @Summary Delete a record
// @Tags dozenten
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /dozenten/{id} [delete]
func (c *DozentController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Dozent gelöscht"}, ""))
}
