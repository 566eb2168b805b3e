package services

import "github.com/asterwei416/cybercat/internal/domain/entities"

// ThreatTier is the dashboard classification derived from the
// ferocity/chaos average of an analysis.
type ThreatTier string

const (
	TierTrash   ThreatTier = "Trash // 戰五渣"
	TierExtreme ThreatTier = "Extreme // 極危"
	TierStable  ThreatTier = "Stable // 穩定"
)

// extremeThreshold: averages strictly above it are Extreme.
const extremeThreshold = 80.0

// DeriveThreatTier classifies an analysis. Non-cats are always Trash,
// whatever their stats say.
func DeriveThreatTier(result *entities.AnalysisResult) ThreatTier {
	if !result.IsCat() {
		return TierTrash
	}
	if result.Stats().ThreatAverage() > extremeThreshold {
		return TierExtreme
	}
	return TierStable
}

// Alert reports whether the tier renders as an alert state.
func (t ThreatTier) Alert() bool {
	return t == TierExtreme
}
