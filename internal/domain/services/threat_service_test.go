package services

import (
	"testing"

	"github.com/asterwei416/cybercat/internal/domain/entities"
	"github.com/asterwei416/cybercat/internal/domain/valueobjects"
)

func analysisWith(isCat bool, ferocity, chaos int) *entities.AnalysisResult {
	return entities.NewAnalysisResult(isCat, "Test Unit", "🐱", "desc", "traits", valueobjects.StatBlock{
		Cuteness: 50,
		Ferocity: ferocity,
		Agility:  50,
		Chaos:    chaos,
		Hunger:   50,
		Defense:  50,
	})
}

func TestDeriveThreatTier(t *testing.T) {
	tests := []struct {
		name     string
		isCat    bool
		ferocity int
		chaos    int
		want     ThreatTier
	}{
		{
			name:     "non-cat is trash regardless of high stats",
			isCat:    false,
			ferocity: 100,
			chaos:    100,
			want:     TierTrash,
		},
		{
			name:     "non-cat is trash regardless of low stats",
			isCat:    false,
			ferocity: 10,
			chaos:    5,
			want:     TierTrash,
		},
		{
			name:     "average 82.5 is extreme",
			isCat:    true,
			ferocity: 90,
			chaos:    75,
			want:     TierExtreme,
		},
		{
			name:     "average exactly 80 is stable",
			isCat:    true,
			ferocity: 80,
			chaos:    80,
			want:     TierStable,
		},
		{
			name:     "average just above 80 is extreme",
			isCat:    true,
			ferocity: 81,
			chaos:    80,
			want:     TierExtreme,
		},
		{
			name:     "low average is stable",
			isCat:    true,
			ferocity: 10,
			chaos:    5,
			want:     TierStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveThreatTier(analysisWith(tt.isCat, tt.ferocity, tt.chaos))
			if got != tt.want {
				t.Errorf("DeriveThreatTier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThreatTier_Alert(t *testing.T) {
	if !TierExtreme.Alert() {
		t.Errorf("Extreme tier should render as an alert state")
	}
	if TierStable.Alert() || TierTrash.Alert() {
		t.Errorf("Only the extreme tier renders as an alert state")
	}
}
