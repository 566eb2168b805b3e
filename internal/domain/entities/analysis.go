package entities

import "github.com/asterwei416/cybercat/internal/domain/valueobjects"

// AnalysisResult is the structured record returned by the analysis
// service. It is immutable once built; the session keeps the last
// successful result until the next capture replaces it.
type AnalysisResult struct {
	isCat        bool
	title        string
	emoji        string
	description  string
	visualTraits string
	stats        valueobjects.StatBlock
}

func NewAnalysisResult(isCat bool, title, emoji, description, visualTraits string, stats valueobjects.StatBlock) *AnalysisResult {
	return &AnalysisResult{
		isCat:        isCat,
		title:        title,
		emoji:        emoji,
		description:  description,
		visualTraits: visualTraits,
		stats:        stats,
	}
}

func (r *AnalysisResult) IsCat() bool {
	return r.isCat
}

func (r *AnalysisResult) Title() string {
	return r.title
}

func (r *AnalysisResult) Emoji() string {
	return r.emoji
}

func (r *AnalysisResult) Description() string {
	return r.description
}

// VisualTraits is the terse visual description bridging analysis output
// to the portrait generation prompt.
func (r *AnalysisResult) VisualTraits() string {
	return r.visualTraits
}

func (r *AnalysisResult) Stats() valueobjects.StatBlock {
	return r.stats
}
