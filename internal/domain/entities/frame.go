package entities

import "github.com/asterwei416/cybercat/internal/domain/valueobjects"

type CaptureSource string

const (
	SourceCamera CaptureSource = "camera"
	SourceFile   CaptureSource = "file"
)

// CapturedFrame is a single still image produced by the camera snapshot
// or a file upload, normalized for transmission. It is consumed by one
// scan; a new capture invalidates the previous analysis and portrait.
type CapturedFrame struct {
	source CaptureSource
	image  *valueobjects.ImageData
}

func NewCapturedFrame(source CaptureSource, image *valueobjects.ImageData) *CapturedFrame {
	return &CapturedFrame{
		source: source,
		image:  image,
	}
}

func (f *CapturedFrame) Source() CaptureSource {
	return f.source
}

func (f *CapturedFrame) Image() *valueobjects.ImageData {
	return f.image
}

func (f *CapturedFrame) Width() int {
	return f.image.Width()
}

func (f *CapturedFrame) Height() int {
	return f.image.Height()
}
