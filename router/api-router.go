package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/brandboost-ai/brandboost/controller"
	"github.com/brandboost-ai/brandboost/middleware"
)

func SetApiRouter(router *gin.Engine) {
	router.Use(middleware.CORS())
	apiRouter := router.Group("/api")
	apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	apiRouter.Use(middleware.PanicRecover())
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", controller.GetStatus)
		apiRouter.GET("/asset_types", controller.GetAssetTypes)
		apiRouter.POST("/generate", middleware.CriticalRateLimit(), controller.Generate)
		apiRouter.POST("/prompt_preview", controller.PreviewPrompt)
		apiRouter.POST("/assets/convert", controller.ConvertAsset)
	}
}
