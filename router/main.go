package router

import (
	"embed"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/brandboost-ai/brandboost/common/logger"
)

func SetRouter(router *gin.Engine, buildFS embed.FS) {
	SetApiRouter(router)

	// The swagger.json ships inside the embedded web assets by default; an
	// externally hosted document can be pointed at instead.
	swaggerURL := os.Getenv("SWAGGER_JSON_URL")
	if swaggerURL == "" {
		swaggerURL = "/swagger.json"
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL(swaggerURL),
	))
	logger.SysLog(fmt.Sprintf("Swagger UI enabled at /swagger/index.html (doc: %s)", swaggerURL))

	SetWebRouter(router, buildFS)
}
