package controller

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/brandboost-ai/brandboost/common"
	"github.com/brandboost-ai/brandboost/common/config"
	"github.com/brandboost-ai/brandboost/common/helper"
	img "github.com/brandboost-ai/brandboost/common/image"
	"github.com/brandboost-ai/brandboost/common/logger"
	"github.com/brandboost-ai/brandboost/gemini"
	"github.com/brandboost-ai/brandboost/model"
	"github.com/brandboost-ai/brandboost/prompt"
	"github.com/brandboost-ai/brandboost/service"
)

const generationFailedMessage = "Image generation failed. Please try again."

const sessionIdKey = "session_id"

// maxGenerateBodyBytes caps the whole upload: logo plus two references plus
// form text headroom.
func maxGenerateBodyBytes() int64 {
	return 3*config.MaxImageSizeBytes + 1<<20
}

func sessionId(c *gin.Context) string {
	session := sessions.Default(c)
	id, _ := session.Get(sessionIdKey).(string)
	if id == "" {
		id = helper.GetUUID()
		session.Set(sessionIdKey, id)
		if err := session.Save(); err != nil {
			logger.Errorf(c.Request.Context(), "save session failed: %s", err.Error())
		}
	}
	return id
}

func Generate(c *gin.Context) {
	ctx := c.Request.Context()

	id := sessionId(c)
	if !service.GenerationGuard.Acquire(id) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "A generation is already in progress for this session, please wait for it to finish",
		})
		return
	}
	defer service.GenerationGuard.Release(id)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxGenerateBodyBytes())

	req, bindErr := bindGenerationRequest(c)
	if bindErr != nil {
		// Multipart parsing does not always wrap the limit error.
		var maxBytesErr *http.MaxBytesError
		if errors.As(bindErr, &maxBytesErr) || strings.Contains(bindErr.Error(), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"message": fmt.Sprintf("Request body too large, the limit is %d MB per image", config.MaxImageSizeMB),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + bindErr.Error(),
		})
		return
	}

	req.Normalize()
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "The request failed validation",
			"errors":  fieldErrors,
		})
		return
	}

	segments, err := prompt.Build(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	aspectRatio := ""
	if assetType, ok := model.FindAssetType(req.AssetType); ok {
		aspectRatio = assetType.AspectRatio
	}

	adaptor, err := gemini.NewAdaptor()
	if err != nil {
		logger.Errorf(ctx, "build adaptor failed: %s", err.Error())
		respondGenerationFailure(c)
		return
	}

	logger.Infof(ctx, "generation started: asset_type=%s, images=%d, aspect_ratio=%s",
		req.AssetType, prompt.ImageCount(segments), aspectRatio)

	result, bizErr := adaptor.DoRequest(ctx, adaptor.ConvertRequest(segments, aspectRatio))
	if bizErr != nil {
		logger.Errorf(ctx, "generation failed: code=%v, status=%d, message=%s",
			bizErr.Error.Code, bizErr.StatusCode, bizErr.Error.Message)
		respondGenerationFailure(c)
		return
	}

	logger.Infof(ctx, "generation finished in %.3fs: model=%s, asset_bytes=%d",
		result.Duration, result.Model, result.Asset.Size())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    result,
	})
	return
}

// Whatever went wrong upstream, the caller gets one fixed message plus the
// request id. The log carries the detail.
func respondGenerationFailure(c *gin.Context) {
	c.JSON(http.StatusBadGateway, gin.H{
		"success": false,
		"message": helper.MessageWithRequestId(generationFailedMessage, c.GetString(logger.RequestIdKey)),
	})
}

func bindGenerationRequest(c *gin.Context) (*model.GenerationRequest, error) {
	var req model.GenerationRequest
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := common.UnmarshalBodyReusable(c, &req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := c.ShouldBind(&req); err != nil {
		return nil, err
	}
	var err error
	if req.Logo, err = readFormImage(c, "logo"); err != nil {
		return nil, err
	}
	if req.ReferenceImage1, err = readFormImage(c, "reference_image_1"); err != nil {
		return nil, err
	}
	if req.ReferenceImage2, err = readFormImage(c, "reference_image_2"); err != nil {
		return nil, err
	}
	return &req, nil
}

func readFormImage(c *gin.Context, field string) (*model.ImageBlob, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file %s: %w", field, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = img.DetectMimeType(data)
	}
	return model.NewImageBlob(mimeType, data), nil
}
