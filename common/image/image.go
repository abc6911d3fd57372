package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
)

// Regex to match data URL pattern
var dataURLPattern = regexp.MustCompile(`data:image/([^;]+);base64,(.*)`)

// ParseDataURI splits an image data URI into its MIME type and raw bytes.
func ParseDataURI(uri string) (mimeType string, data []byte, err error) {
	matches := dataURLPattern.FindStringSubmatch(uri)
	if len(matches) != 3 {
		return "", nil, errors.New("not an image data URI")
	}
	mimeType = "image/" + matches[1]
	data, err = base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}

func FormatDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DetectMimeType sniffs the content type from the first 512 bytes.
func DetectMimeType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	return http.DetectContentType(data)
}

func IsImageData(data []byte) bool {
	return strings.HasPrefix(DetectMimeType(data), "image/")
}

var (
	reg = regexp.MustCompile(`data:image/([^;]+);base64,`)
)

var readerPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Reader{}
	},
}

func GetImageSizeFromBase64(encoded string) (width int, height int, err error) {
	decoded, err := base64.StdEncoding.DecodeString(reg.ReplaceAllString(encoded, ""))
	if err != nil {
		return 0, 0, err
	}
	return GetImageSizeFromBytes(decoded)
}

func GetImageSizeFromBytes(data []byte) (width int, height int, err error) {
	reader := readerPool.Get().(*bytes.Reader)
	defer readerPool.Put(reader)
	reader.Reset(data)

	img, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, err
	}

	return img.Width, img.Height, nil
}

// FlattenToJPEG re-encodes any decodable image as JPEG, first drawing it
// over an opaque background so transparency cannot survive the conversion.
func FlattenToJPEG(data []byte, background color.Color, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(background), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
