package model

import (
	"encoding/json"
	"errors"

	img "github.com/brandboost-ai/brandboost/common/image"
)

// ImageBlob is a self-describing encoded image: MIME type plus raw bytes.
// On the wire it is a single data URI string.
type ImageBlob struct {
	MimeType string
	Data     []byte
}

func NewImageBlob(mimeType string, data []byte) *ImageBlob {
	return &ImageBlob{MimeType: mimeType, Data: data}
}

func (b *ImageBlob) DataURI() string {
	return img.FormatDataURI(b.MimeType, b.Data)
}

func (b *ImageBlob) Size() int64 {
	return int64(len(b.Data))
}

func (b ImageBlob) MarshalJSON() ([]byte, error) {
	return json.Marshal(img.FormatDataURI(b.MimeType, b.Data))
}

func (b *ImageBlob) UnmarshalJSON(raw []byte) error {
	var uri string
	if err := json.Unmarshal(raw, &uri); err != nil {
		return err
	}
	if uri == "" {
		return errors.New("empty image data")
	}
	mimeType, data, err := img.ParseDataURI(uri)
	if err != nil {
		return err
	}
	b.MimeType = mimeType
	b.Data = data
	return nil
}
