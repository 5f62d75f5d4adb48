package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/kursverwaltung/internal/app/controllers"
	"github.com/yigit/kursverwaltung/internal/app/models/dto"
)

// Controllers groups everything the router dispatches to
type Controllers struct {
	Dashboard   *controllers.DashboardController
	Dozenten    *controllers.DozentController
	Raeume      *controllers.RaumController
	Teilnehmer  *controllers.TeilnehmerController
	Kurse       *controllers.KursController
	Anmeldungen *controllers.AnmeldungController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	// --- Dashboard (HTML) ---
	router.GET("/", c.Dashboard.Index)
	for _, tab := range c.Dashboard.Tabs() {
		group := router.Group("/" + tab)
		{
			group.GET("/new", c.Dashboard.NewForm(tab))
			group.POST("", c.Dashboard.Submit(tab))
			group.GET("/:id/edit", c.Dashboard.EditForm(tab))
			group.POST("/:id", c.Dashboard.Submit(tab))
			group.GET("/:id/delete", c.Dashboard.ConfirmDelete(tab))
			group.POST("/:id/delete", c.Dashboard.Delete(tab))
		}
	}
	router.POST("/anmeldungen/:id/toggle-bezahlt", c.Dashboard.TogglePaid)

	// --- JSON API ---
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
	v1.GET("/dashboard", c.Dashboard.Stats)

	dozenten := v1.Group("/dozenten")
	{
		dozenten.GET("", c.Dozenten.List)
		dozenten.GET("/:id", c.Dozenten.Get)
		dozenten.POST("", c.Dozenten.Create)
		dozenten.PUT("/:id", c.Dozenten.Update)
		dozenten.DELETE("/:id", c.Dozenten.Delete)
	}

	raeume := v1.Group("/raeume")
	{
		raeume.GET("", c.Raeume.List)
		raeume.GET("/:id", c.Raeume.Get)
		raeume.POST("", c.Raeume.Create)
		raeume.PUT("/:id", c.Raeume.Update)
		raeume.DELETE("/:id", c.Raeume.Delete)
	}

	teilnehmer := v1.Group("/teilnehmer")
	{
		teilnehmer.GET("", c.Teilnehmer.List)
		teilnehmer.GET("/:id", c.Teilnehmer.Get)
		teilnehmer.POST("", c.Teilnehmer.Create)
		teilnehmer.PUT("/:id", c.Teilnehmer.Update)
		teilnehmer.DELETE("/:id", c.Teilnehmer.Delete)
	}

	kurse := v1.Group("/kurse")
	{
		kurse.GET("", c.Kurse.List)
		kurse.GET("/:id", c.Kurse.Get)
		kurse.POST("", c.Kurse.Create)
		kurse.PUT("/:id", c.Kurse.Update)
		kurse.DELETE("/:id", c.Kurse.Delete)
	}

	anmeldungen := v1.Group("/anmeldungen")
	{
		anmeldungen.GET("", c.Anmeldungen.List)
		anmeldungen.GET("/:id", c.Anmeldungen.Get)
		anmeldungen.POST("", c.Anmeldungen.Create)
		anmeldungen.PUT("/:id", c.Anmeldungen.Update)
		anmeldungen.DELETE("/:id", c.Anmeldungen.Delete)
		anmeldungen.PATCH("/:id/bezahlt", c.Anmeldungen.SetPaid)
	}

	// Test endpoint
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
}
