package entities

import "errors"

// Scan failure taxonomy. Capture-side failures are terminal for that
// attempt; analysis failures abort the pipeline with the frame
// preserved; generation failures are non-fatal because a valid
// analysis already exists.
var (
	ErrDeviceUnavailable = errors.New("camera device unavailable")
	ErrDecodeError       = errors.New("unsupported or corrupt image data")
	ErrRemoteError       = errors.New("remote service failure")
	ErrSchemaViolation   = errors.New("analysis response does not match the declared schema")
	ErrNoImageReturned   = errors.New("generation response contained no image data")
	ErrScanBusy          = errors.New("a scan is already in progress")
)
