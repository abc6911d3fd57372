package controller

import (
	"fmt"
	"image/color"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandboost-ai/brandboost/common"
	img "github.com/brandboost-ai/brandboost/common/image"
	"github.com/brandboost-ai/brandboost/common/logger"
	"github.com/brandboost-ai/brandboost/model"
)

const (
	downloadSuffix = "_brandboost_asset"
	jpegQuality    = 92
)

type ConvertAssetRequest struct {
	Asset        *model.ImageBlob `json:"asset"`
	Format       string           `json:"format"`
	BusinessName string           `json:"business_name"`
}

// ConvertAsset turns a generated asset into a downloadable file. PNG keeps
// the original bytes untouched; JPEG flattens transparency onto white before
// re-encoding.
func ConvertAsset(c *gin.Context) {
	var req ConvertAssetRequest
	if err := common.UnmarshalBodyReusable(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	fieldErrors := make(map[string]string)
	if req.Asset == nil || len(req.Asset.Data) == 0 {
		fieldErrors["asset"] = "asset is required"
	}
	if req.Format != "png" && req.Format != "jpeg" {
		fieldErrors["format"] = "format must be png or jpeg"
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "The request failed validation",
			"errors":  fieldErrors,
		})
		return
	}

	var (
		data        []byte
		contentType string
		extension   string
	)
	switch req.Format {
	case "png":
		// Pass-through keeps the transparency intact.
		data = req.Asset.Data
		contentType = req.Asset.MimeType
		if contentType == "" {
			contentType = "image/png"
		}
		extension = ".png"
	case "jpeg":
		flattened, err := img.FlattenToJPEG(req.Asset.Data, color.White, jpegQuality)
		if err != nil {
			logger.Errorf(c.Request.Context(), "flatten asset to jpeg failed: %s", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to convert the asset",
			})
			return
		}
		data = flattened
		contentType = "image/jpeg"
		extension = ".jpg"
	}

	name := common.SanitizeFilenamePart(req.BusinessName)
	if name == "" {
		name = "asset"
	}
	filename := name + downloadSuffix + extension

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
	return
}
