package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/models/dto"
	"github.com/yigit/kursverwaltung/internal/pkg/helpers"
)

// respondList writes items, paginated when the client sent page or size
func respondList[T any](ctx *gin.Context, items []T) {
	page, size, paginate := helpers.ParsePaginationParams(ctx)
	if !paginate {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items, ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      helpers.Paginate(items, page, size),
		Pagination: helpers.NewPaginationInfo(len(items), page, size),
	}, ""))
}
