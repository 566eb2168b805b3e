package services

import (
	"sync"

	"github.com/asterwei416/cybercat/internal/domain/entities"
)

// SessionService owns the in-flight guard, the last-known scan, and the
// reported camera-stream flag. Triggers while busy are discarded, never
// queued, and in-progress work is never cancelled by a later trigger.
type SessionService struct {
	mu           sync.Mutex
	state        entities.SessionState
	streamActive bool
	current      *entities.ScanRecord
}

// ResetOutcome tells the presentation layer how to restore the capture
// surface after a reset.
type ResetOutcome struct {
	Full         bool
	ResumeCamera bool
}

func NewSessionService() *SessionService {
	return &SessionService{state: entities.StateIdle}
}

// Begin claims the guard. It fails with entities.ErrScanBusy while a
// scan is in flight.
func (s *SessionService) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Busy() {
		return entities.ErrScanBusy
	}
	s.state = entities.StateCapturing
	return nil
}

// Advance moves the in-flight scan to a later phase. It never releases
// the guard; use Finish for that.
func (s *SessionService) Advance(state entities.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Busy() && state.Busy() {
		s.state = state
	}
}

// Finish releases the guard regardless of how the scan ended.
func (s *SessionService) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = entities.StateIdle
}

func (s *SessionService) State() entities.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SessionService) SetStreamActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streamActive = active
}

func (s *SessionService) StreamActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamActive
}

// Attach makes record the session's current scan. The previous record,
// with its analysis and portrait, stops being live.
func (s *SessionService) Attach(record *entities.ScanRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = record
}

func (s *SessionService) Current() *entities.ScanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset restores the session. A full reset drops the current scan and
// reports whether live video should resume; a partial reset (used after
// an analysis error) keeps everything. Reset never touches a held
// guard: while a scan is in flight it fails with entities.ErrScanBusy,
// otherwise a later scan could overlap the running pipeline.
func (s *SessionService) Reset(full bool) (ResetOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Busy() {
		return ResetOutcome{}, entities.ErrScanBusy
	}
	if !full {
		return ResetOutcome{}, nil
	}

	s.current = nil
	return ResetOutcome{
		Full:         true,
		ResumeCamera: s.streamActive,
	}, nil
}
