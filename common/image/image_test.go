package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// halfTransparentPNG builds a 16x16 PNG whose left half is fully transparent
// and whose right half is opaque red.
func halfTransparentPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestFlattenToJPEG(t *testing.T) {
	data, err := FlattenToJPEG(halfTransparentPNG(t), color.White, 92)
	if err != nil {
		t.Fatalf("FlattenToJPEG() error = %v", err)
	}

	if got := DetectMimeType(data); got != "image/jpeg" {
		t.Fatalf("DetectMimeType() = %v, want image/jpeg", got)
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode flattened jpeg: %v", err)
	}

	// The transparent half must come out white, the red half must stay red.
	// Sampling block centers keeps chroma subsampling out of the comparison.
	r, g, b, a := decoded.At(4, 8).RGBA()
	if a != 0xffff {
		t.Errorf("transparent area alpha = %v, want opaque", a)
	}
	if r>>8 < 230 || g>>8 < 230 || b>>8 < 230 {
		t.Errorf("transparent area = (%d, %d, %d), want near white", r>>8, g>>8, b>>8)
	}

	r, g, b, a = decoded.At(12, 8).RGBA()
	if a != 0xffff {
		t.Errorf("red area alpha = %v, want opaque", a)
	}
	if r>>8 < 180 || g>>8 > 100 || b>>8 > 100 {
		t.Errorf("red area = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
	}
}

func TestFlattenToJPEGRejectsGarbage(t *testing.T) {
	if _, err := FlattenToJPEG([]byte("definitely not an image"), color.White, 92); err == nil {
		t.Error("FlattenToJPEG() on garbage input, want error")
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	original := halfTransparentPNG(t)
	uri := FormatDataURI("image/png", original)

	mimeType, data, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI() error = %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("ParseDataURI() mimeType = %v, want image/png", mimeType)
	}
	if !bytes.Equal(data, original) {
		t.Error("ParseDataURI() data differs from original")
	}
}

func TestParseDataURIRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"plain text", "hello"},
		{"missing prefix", "base64,AAAA"},
		{"bad base64", "data:image/png;base64,!!!not-base64!!!"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseDataURI(tt.uri); err == nil {
				t.Errorf("ParseDataURI(%q) = nil error, want error", tt.uri)
			}
		})
	}
}

func TestDetectMimeType(t *testing.T) {
	pngData := halfTransparentPNG(t)
	if got := DetectMimeType(pngData); got != "image/png" {
		t.Errorf("DetectMimeType(png) = %v, want image/png", got)
	}
	if !IsImageData(pngData) {
		t.Error("IsImageData(png) = false, want true")
	}
	if IsImageData([]byte("some text payload")) {
		t.Error("IsImageData(text) = true, want false")
	}
}

func TestGetImageSize(t *testing.T) {
	pngData := halfTransparentPNG(t)

	width, height, err := GetImageSizeFromBytes(pngData)
	if err != nil {
		t.Fatalf("GetImageSizeFromBytes() error = %v", err)
	}
	if width != 16 || height != 16 {
		t.Errorf("GetImageSizeFromBytes() = %dx%d, want 16x16", width, height)
	}

	// The base64 variant accepts a full data URI as well.
	width, height, err = GetImageSizeFromBase64(FormatDataURI("image/png", pngData))
	if err != nil {
		t.Fatalf("GetImageSizeFromBase64() error = %v", err)
	}
	if width != 16 || height != 16 {
		t.Errorf("GetImageSizeFromBase64() = %dx%d, want 16x16", width, height)
	}

	if _, _, err := GetImageSizeFromBytes([]byte("not an image")); err == nil {
		t.Error("GetImageSizeFromBytes(garbage) = nil error, want error")
	}
}
