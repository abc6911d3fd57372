package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandboost-ai/brandboost/common"
	"github.com/brandboost-ai/brandboost/model"
	"github.com/brandboost-ai/brandboost/prompt"
)

type PromptPreviewRequest struct {
	BusinessName  string `json:"business_name" form:"business_name"`
	AssetType     string `json:"asset_type" form:"asset_type"`
	Description   string `json:"description" form:"description"`
	CustomText    string `json:"custom_text" form:"custom_text"`
	ColorPalette  string `json:"color_palette" form:"color_palette"`
	HasReference1 bool   `json:"has_reference_1" form:"has_reference_1"`
	HasReference2 bool   `json:"has_reference_2" form:"has_reference_2"`
}

// PreviewPrompt renders the prompt that a generation with these fields would
// send, with images shown as placeholders. The logo slot is always assumed
// filled since generation requires it anyway.
func PreviewPrompt(c *gin.Context) {
	var previewReq PromptPreviewRequest
	if err := common.UnmarshalBodyReusable(c, &previewReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	placeholder := model.NewImageBlob("image/png", []byte{0})
	req := &model.GenerationRequest{
		BusinessName: previewReq.BusinessName,
		AssetType:    previewReq.AssetType,
		Description:  previewReq.Description,
		CustomText:   previewReq.CustomText,
		ColorPalette: previewReq.ColorPalette,
		Logo:         placeholder,
	}
	if previewReq.HasReference1 {
		req.ReferenceImage1 = placeholder
	}
	if previewReq.HasReference2 {
		req.ReferenceImage2 = placeholder
	}
	req.Normalize()

	segments, err := prompt.Build(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"prompt":      prompt.RenderText(segments),
			"image_count": prompt.ImageCount(segments),
		},
	})
	return
}
