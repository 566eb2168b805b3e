package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

// TransmitQuality is the JPEG quality used for payloads sent to the
// analysis service.
const TransmitQuality = 80

// ImageData is an immutable raster payload with its sniffed format and
// pixel dimensions.
type ImageData struct {
	data   []byte
	format ImageFormat
	width  int
	height int
}

func NewImageData(data []byte) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	mapped, err := mapFormat(format)
	if err != nil {
		return nil, err
	}

	return &ImageData{
		data:   data,
		format: mapped,
		width:  cfg.Width,
		height: cfg.Height,
	}, nil
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) Width() int {
	return i.width
}

func (i *ImageData) Height() int {
	return i.height
}

func (i *ImageData) MimeType() string {
	return "image/" + string(i.format)
}

func (i *ImageData) IsJPEG() bool {
	return i.format == JPEG
}

// ToJPEG re-encodes the payload as JPEG at the given quality. A payload
// that is already JPEG is returned unchanged.
func (i *ImageData) ToJPEG(quality int) (*ImageData, error) {
	if i.IsJPEG() {
		return i, nil
	}

	img, _, err := image.Decode(bytes.NewReader(i.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	return &ImageData{
		data:   buf.Bytes(),
		format: JPEG,
		width:  i.width,
		height: i.height,
	}, nil
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

func mapFormat(format string) (ImageFormat, error) {
	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
