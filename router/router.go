package router

import (
	"github.com/gin-gonic/gin"

	"doc-assistant-backend/controller"
	"doc-assistant-backend/middleware"
)

func Register(ctl *controller.Controller) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/", ctl.Root)
	r.GET("/health", ctl.Health)

	r.POST("/upload", ctl.Upload)
	r.POST("/ask", ctl.Ask)
	r.GET("/summary", ctl.Summary)
	r.POST("/challenge", ctl.Challenge)
	r.POST("/evaluate", ctl.Evaluate)

	return r
}
