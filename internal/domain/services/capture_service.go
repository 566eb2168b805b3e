package services

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/asterwei416/cybercat/internal/domain/entities"
	"github.com/asterwei416/cybercat/internal/domain/valueobjects"
)

// CaptureService turns raw posted bytes into a normalized CapturedFrame.
// Camera snapshots follow the front-camera convention and are mirrored
// horizontally before encoding; file uploads are decoded as-is.
type CaptureService struct{}

func NewCaptureService() *CaptureService {
	return &CaptureService{}
}

func (s *CaptureService) FromCamera(data []byte) (*entities.CapturedFrame, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: camera produced no frame data", entities.ErrDeviceUnavailable)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable camera frame: %v", entities.ErrDeviceUnavailable, err)
	}

	mirrored := imaging.FlipH(img)

	encoded, err := encodeJPEG(mirrored)
	if err != nil {
		return nil, err
	}

	return entities.NewCapturedFrame(entities.SourceCamera, encoded), nil
}

func (s *CaptureService) FromFile(data []byte) (*entities.CapturedFrame, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", entities.ErrDecodeError)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrDecodeError, err)
	}

	encoded, err := encodeJPEG(img)
	if err != nil {
		return nil, err
	}

	return entities.NewCapturedFrame(entities.SourceFile, encoded), nil
}

func encodeJPEG(img image.Image) (*valueobjects.ImageData, error) {
	var buf bytes.Buffer
	err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(valueobjects.TransmitQuality))
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return valueobjects.NewImageData(buf.Bytes())
}
