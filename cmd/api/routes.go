package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	r.Use(app.CORSMiddleware())

	r.GET("/healthz", app.healthz)

	v1 := r.Group("/api/v1")
	{
		// screening calls
		v1.POST("/calls/initiate", app.Handler.InitiateCall)

		// jobs
		v1.POST("/jobs", app.Handler.CreateJob)
		v1.GET("/jobs", app.Handler.ListJobs)
		v1.GET("/jobs/:id", app.Handler.GetJob)
		v1.PATCH("/jobs/:id/activate", app.Handler.SetJobActive)
		v1.POST("/jobs/generate", app.Handler.GenerateJob)

		// applications
		v1.POST("/applications", app.Handler.SubmitApplication)
		v1.GET("/applications/:id", app.Handler.GetApplication)

		// document extraction for application uploads
		v1.POST("/documents/extract", app.Handler.ExtractDocument)

		// voice agent management
		v1.GET("/agents", app.Handler.ListAgents)
		v1.POST("/agents", app.Handler.CreateAgent)
		v1.PATCH("/agents/:id", app.Handler.UpdateAgent)

		// provider callbacks; no auth, correlation happens via metadata
		v1.POST("/webhooks/vapi", app.Handler.VapiWebhook)
	}

	return r
}

func (app *application) healthz(c *gin.Context) {
	if err := app.DB.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
