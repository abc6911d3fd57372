package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/brandboost-ai/brandboost/common/config"
	img "github.com/brandboost-ai/brandboost/common/image"
)

var validate = validator.New()

// GenerationRequest is one form submission: the business facts plus the
// uploaded images, already decoded into blobs.
type GenerationRequest struct {
	BusinessName string `json:"business_name" form:"business_name" validate:"required,max=120"`
	AssetType    string `json:"asset_type" form:"asset_type" validate:"required,max=64"`
	Description  string `json:"description" form:"description" validate:"required,max=2000"`
	CustomText   string `json:"custom_text" form:"custom_text" validate:"max=500"`
	ColorPalette string `json:"color_palette" form:"color_palette" validate:"max=200"`

	Logo            *ImageBlob `json:"logo" form:"-" validate:"required"`
	ReferenceImage1 *ImageBlob `json:"reference_image_1" form:"-"`
	ReferenceImage2 *ImageBlob `json:"reference_image_2" form:"-"`
}

// fieldNames maps struct fields to their form names for error reporting.
var fieldNames = map[string]string{
	"BusinessName":    "business_name",
	"AssetType":       "asset_type",
	"Description":     "description",
	"CustomText":      "custom_text",
	"ColorPalette":    "color_palette",
	"Logo":            "logo",
	"ReferenceImage1": "reference_image_1",
	"ReferenceImage2": "reference_image_2",
}

func (r *GenerationRequest) Normalize() {
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.AssetType = strings.TrimSpace(r.AssetType)
	r.Description = strings.TrimSpace(r.Description)
	r.CustomText = strings.TrimSpace(r.CustomText)
	r.ColorPalette = strings.TrimSpace(r.ColorPalette)
}

// Validate returns one message per offending form field. An empty map means
// the request is ready for prompt assembly.
func (r *GenerationRequest) Validate() map[string]string {
	r.Normalize()
	fieldErrors := make(map[string]string)

	if err := validate.Struct(r); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, e := range validationErrors {
				name, ok := fieldNames[e.StructField()]
				if !ok {
					name = e.StructField()
				}
				switch e.Tag() {
				case "required":
					fieldErrors[name] = "this field is required"
				case "max":
					fieldErrors[name] = fmt.Sprintf("must be at most %s characters", e.Param())
				default:
					fieldErrors[name] = "invalid value"
				}
			}
		} else {
			fieldErrors["request"] = err.Error()
		}
	}

	r.validateImage("logo", r.Logo, fieldErrors)
	r.validateImage("reference_image_1", r.ReferenceImage1, fieldErrors)
	r.validateImage("reference_image_2", r.ReferenceImage2, fieldErrors)

	return fieldErrors
}

func (r *GenerationRequest) validateImage(field string, blob *ImageBlob, fieldErrors map[string]string) {
	if blob == nil {
		return
	}
	if _, taken := fieldErrors[field]; taken {
		return
	}
	if len(blob.Data) == 0 {
		fieldErrors[field] = "image is empty"
		return
	}
	if blob.Size() > config.MaxImageSizeBytes {
		fieldErrors[field] = fmt.Sprintf("image exceeds the %d MB limit", config.MaxImageSizeMB)
		return
	}
	// The client supplied MIME type is advisory only.
	sniffed := img.DetectMimeType(blob.Data)
	if !config.IsImageTypeAllowed(sniffed) {
		fieldErrors[field] = fmt.Sprintf("unsupported image type %s, allowed: %s",
			sniffed, strings.Join(config.AllowedImageTypes, ", "))
		return
	}
	blob.MimeType = sniffed
	if _, _, err := img.GetImageSizeFromBytes(blob.Data); err != nil {
		fieldErrors[field] = "image cannot be decoded"
	}
}
