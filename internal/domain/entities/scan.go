package entities

import (
	"fmt"
	"sync/atomic"
	"time"
)

type ScanID string

var scanSequence atomic.Uint64

// ScanRecord ties one captured frame to the analysis and portrait it
// produced. Attaching a new analysis drops any portrait generated for
// the previous one.
type ScanRecord struct {
	id        ScanID
	frame     *CapturedFrame
	result    *AnalysisResult
	image     *GeneratedImage
	createdAt time.Time
}

func NewScanRecord(frame *CapturedFrame) *ScanRecord {
	now := time.Now()
	return &ScanRecord{
		id:        ScanID(fmt.Sprintf("scan-%d-%d", now.UnixNano(), scanSequence.Add(1))),
		frame:     frame,
		createdAt: now,
	}
}

func (s *ScanRecord) ID() ScanID {
	return s.id
}

func (s *ScanRecord) Frame() *CapturedFrame {
	return s.frame
}

func (s *ScanRecord) Result() *AnalysisResult {
	return s.result
}

func (s *ScanRecord) Image() *GeneratedImage {
	return s.image
}

func (s *ScanRecord) CreatedAt() time.Time {
	return s.createdAt
}

func (s *ScanRecord) AttachResult(result *AnalysisResult) {
	s.result = result
	s.image = nil
}

func (s *ScanRecord) AttachImage(image *GeneratedImage) {
	s.image = image
}
