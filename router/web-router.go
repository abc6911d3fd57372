package router

import (
	"embed"
	"net/http"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"

	"github.com/brandboost-ai/brandboost/common"
	"github.com/brandboost-ai/brandboost/common/logger"
)

func SetWebRouter(router *gin.Engine, buildFS embed.FS) {
	indexPageData, err := buildFS.ReadFile("web/index.html")
	if err != nil {
		logger.FatalLog("failed to read embedded index.html: " + err.Error())
	}
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(static.Serve("/", common.EmbedFolder(buildFS, "web")))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.RequestURI, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Not found",
			})
			return
		}
		c.Header("Cache-Control", "no-cache")
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPageData)
	})
}
