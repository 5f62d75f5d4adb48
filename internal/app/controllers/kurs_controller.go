package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/middleware"
)

// KursController handles the JSON API of courses
type KursController struct {
	service services.KursService
}

// NewKursController creates a new KursController
func NewKursController(service services.KursService) *KursController {
	return &KursController{service: service}
}

// List returns all courses
// @Summary List courses
// @Tags kurse
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Kurs}
// @Failure 502 {object} dto.ErrorResponse "Record service unavailable"
// @Router /kurse [get]
func (c *KursController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, items)
}

// Get returns one record
// @Summary Get a record
// @Tags kurse
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.Kurs}
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /kurse/{id} [get]
func (c *KursController) Get(ctx *gin.Context) {
	item, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}

// Create stores a new record
// @Summary Create a record
// @Tags kurse
// @Accept json
// @Produce json
// @Param request body dto.KursRequest true "Fields"
// @Success 201 {object} dto.APIResponse{data=models.Kurs}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /kurse [post]
func (c *KursController) Create(ctx *gin.Context) {
	var req dto.KursRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Kurs erstellt"))
}

// Update replaces the fields of a record
// @Summary Update a record
// @Tags kurse
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.KursRequest true "Fields"
// @Success 200 {object} dto.APIResponse{data=models.Kurs}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /kurse/{id} [put]
func (c *KursController) Update(ctx *gin.Context) {
	var req dto.KursRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	item, err := c.service.Update(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Kurs aktualisiert"))
}

// Delete removes a record
// @Summary Delete a record
// @Tags kurse
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /kurse/{id} [delete]
func (c *KursController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Kurs gelöscht"}, ""))
}
