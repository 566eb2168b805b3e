package entities

import "encoding/base64"

const defaultPortraitMimeType = "image/png"

// GeneratedImage is the raster portrait returned by the generation
// service. At most one is live at a time.
type GeneratedImage struct {
	data     []byte
	mimeType string
}

func NewGeneratedImage(data []byte, mimeType string) *GeneratedImage {
	if mimeType == "" {
		mimeType = defaultPortraitMimeType
	}
	return &GeneratedImage{
		data:     data,
		mimeType: mimeType,
	}
}

func (g *GeneratedImage) Data() []byte {
	return g.data
}

func (g *GeneratedImage) MimeType() string {
	return g.mimeType
}

func (g *GeneratedImage) ToBase64() string {
	return base64.StdEncoding.EncodeToString(g.data)
}
