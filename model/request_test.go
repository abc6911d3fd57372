package model

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/brandboost-ai/brandboost/common/config"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func validRequest(t *testing.T) *GenerationRequest {
	t.Helper()
	return &GenerationRequest{
		BusinessName: "Acme Coffee",
		AssetType:    "social_media_post",
		Description:  "Specialty coffee roasters in the old harbor district.",
		Logo:         NewImageBlob("image/png", testPNG(t)),
	}
}

func TestValidatePassesCompleteRequest(t *testing.T) {
	req := validRequest(t)
	if errs := req.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	req := &GenerationRequest{}
	errs := req.Validate()

	for _, field := range []string{"business_name", "asset_type", "description", "logo"} {
		if errs[field] != "this field is required" {
			t.Errorf("Validate()[%q] = %q, want required error", field, errs[field])
		}
	}
	for _, field := range []string{"custom_text", "color_palette", "reference_image_1", "reference_image_2"} {
		if _, ok := errs[field]; ok {
			t.Errorf("Validate()[%q] set for optional field", field)
		}
	}
}

func TestValidateWhitespaceOnlyIsEmpty(t *testing.T) {
	req := validRequest(t)
	req.Description = "   \t  "
	errs := req.Validate()
	if errs["description"] != "this field is required" {
		t.Errorf("Validate()[description] = %q, want required error", errs["description"])
	}
}

func TestValidateLengthCeilings(t *testing.T) {
	req := validRequest(t)
	req.BusinessName = strings.Repeat("a", 121)
	errs := req.Validate()
	if errs["business_name"] != "must be at most 120 characters" {
		t.Errorf("Validate()[business_name] = %q, want length error", errs["business_name"])
	}
}

func TestValidateImageRules(t *testing.T) {
	pngData := testPNG(t)

	tests := []struct {
		name      string
		blob      *ImageBlob
		wantError string
	}{
		{
			name:      "empty data",
			blob:      NewImageBlob("image/png", nil),
			wantError: "image is empty",
		},
		{
			name:      "not an image",
			blob:      NewImageBlob("image/png", []byte("just some text, not pixels")),
			wantError: "unsupported image type",
		},
		{
			name:      "image header only",
			blob:      NewImageBlob("image/png", pngData[:20]),
			wantError: "image cannot be decoded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			req.ReferenceImage1 = tt.blob
			errs := req.Validate()
			if !strings.Contains(errs["reference_image_1"], tt.wantError) {
				t.Errorf("Validate()[reference_image_1] = %q, want containing %q",
					errs["reference_image_1"], tt.wantError)
			}
		})
	}
}

func TestValidateSizeCeiling(t *testing.T) {
	restore := config.MaxImageSizeBytes
	config.MaxImageSizeBytes = 16
	defer func() { config.MaxImageSizeBytes = restore }()

	req := validRequest(t)
	errs := req.Validate()
	if !strings.Contains(errs["logo"], "exceeds") {
		t.Errorf("Validate()[logo] = %q, want size error", errs["logo"])
	}
}

func TestValidateSniffsMimeType(t *testing.T) {
	req := validRequest(t)
	// The declared type is advisory, the sniffed one wins.
	req.Logo.MimeType = "application/octet-stream"
	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
	if req.Logo.MimeType != "image/png" {
		t.Errorf("Logo.MimeType = %q, want image/png after sniffing", req.Logo.MimeType)
	}
}

func TestNormalizeTrims(t *testing.T) {
	req := &GenerationRequest{
		BusinessName: "  Acme  ",
		AssetType:    " poster ",
		Description:  " desc ",
		CustomText:   "  Grand Opening  ",
		ColorPalette: " navy and gold ",
	}
	req.Normalize()
	if req.BusinessName != "Acme" || req.AssetType != "poster" || req.Description != "desc" ||
		req.CustomText != "Grand Opening" || req.ColorPalette != "navy and gold" {
		t.Errorf("Normalize() left whitespace: %+v", req)
	}
}
