package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandboost-ai/brandboost/common"
	"github.com/brandboost-ai/brandboost/common/config"
	"github.com/brandboost-ai/brandboost/model"
)

func GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"version":             common.Version,
			"start_time":          common.StartTime,
			"system_name":         config.SystemName,
			"model":               config.GeminiModel,
			"api_key_configured":  config.GeminiAPIKey != "",
			"max_image_size_mb":   config.MaxImageSizeMB,
			"allowed_image_types": config.AllowedImageTypes,
		},
	})
	return
}

func GetAssetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    model.AssetTypes,
	})
	return
}
