package router

import (
	"tpch-sweep/internal/handler"
	"tpch-sweep/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(svc *service.ServiceContext) *gin.Engine {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	sweepHandler := handler.NewSweepHandler(svc.Artifacts, svc.Config.SweepParams())

	api := r.Group("/api")
	{
		sweep := api.Group("/sweep")
		{
			sweep.GET("/status", sweepHandler.GetStatus)
			sweep.GET("/plan", sweepHandler.GetPlan)
		}
	}

	return r
}
