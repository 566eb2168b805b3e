package usecases

import (
	"context"
	"fmt"
	"log/slog"

	appservices "github.com/asterwei416/cybercat/internal/application/services"
	"github.com/asterwei416/cybercat/internal/domain/entities"
	"github.com/asterwei416/cybercat/internal/domain/repositories"
	domainservices "github.com/asterwei416/cybercat/internal/domain/services"
)

// ScanUseCase runs the full pipeline: capture, analyze, derive the
// threat tier, then generate the portrait. Generation runs only after a
// successful analysis, and its failure is non-fatal because the
// analysis is already live.
type ScanUseCase struct {
	capture    *domainservices.CaptureService
	analysis   repositories.AnalysisService
	generation repositories.GenerationService
	scans      repositories.ScanRepository
	session    *appservices.SessionService
}

func NewScanUseCase(
	capture *domainservices.CaptureService,
	analysis repositories.AnalysisService,
	generation repositories.GenerationService,
	scans repositories.ScanRepository,
	session *appservices.SessionService,
) *ScanUseCase {
	return &ScanUseCase{
		capture:    capture,
		analysis:   analysis,
		generation: generation,
		scans:      scans,
		session:    session,
	}
}

type ScanInput struct {
	Source       entities.CaptureSource
	Data         []byte
	StreamActive bool
}

type ScanOutput struct {
	Record *entities.ScanRecord
	Tier   domainservices.ThreatTier
	// ImageErr carries a generation failure that was swallowed as
	// UI-only; the analysis in Record is still valid.
	ImageErr error
}

func (uc *ScanUseCase) Scan(ctx context.Context, input ScanInput) (*ScanOutput, error) {
	if err := uc.session.Begin(); err != nil {
		return nil, err
	}
	defer uc.session.Finish()

	uc.session.SetStreamActive(input.StreamActive)

	frame, err := uc.captureFrame(input)
	if err != nil {
		return nil, err
	}

	record := entities.NewScanRecord(frame)
	uc.session.Attach(record)

	uc.session.Advance(entities.StateAnalyzing)
	slog.Info("analyzing frame", "scan", record.ID(), "source", frame.Source(), "width", frame.Width(), "height", frame.Height())

	result, err := uc.analysis.Analyze(ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	record.AttachResult(result)
	if err := uc.scans.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save scan: %w", err)
	}

	tier := domainservices.DeriveThreatTier(result)
	output := &ScanOutput{Record: record, Tier: tier}

	uc.session.Advance(entities.StateRendering)
	slog.Info("generating portrait", "scan", record.ID(), "tier", tier, "isCat", result.IsCat())

	image, err := uc.generation.Generate(ctx, result.VisualTraits())
	if err != nil {
		slog.Warn("portrait generation failed", "scan", record.ID(), "error", err)
		output.ImageErr = err
		return output, nil
	}

	record.AttachImage(image)
	if err := uc.scans.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save scan: %w", err)
	}

	return output, nil
}

func (uc *ScanUseCase) captureFrame(input ScanInput) (*entities.CapturedFrame, error) {
	switch input.Source {
	case entities.SourceCamera:
		return uc.capture.FromCamera(input.Data)
	default:
		return uc.capture.FromFile(input.Data)
	}
}
