package valueobjects

import "fmt"

const (
	StatMin = 0
	StatMax = 100
)

// RadarAxes is the fixed axis order of the radar visualization.
var RadarAxes = [6]string{"cuteness", "ferocity", "agility", "chaos", "hunger", "defense"}

// StatBlock is the six bounded combat stats returned by the analysis
// service. Every value must lie within [StatMin, StatMax].
type StatBlock struct {
	Cuteness int `json:"cuteness"`
	Ferocity int `json:"ferocity"`
	Agility  int `json:"agility"`
	Chaos    int `json:"chaos"`
	Hunger   int `json:"hunger"`
	Defense  int `json:"defense"`
}

func (s StatBlock) Validate() error {
	values := s.AxisValues()
	for i, v := range values {
		if v < StatMin || v > StatMax {
			return fmt.Errorf("stat %s out of range: %d", RadarAxes[i], v)
		}
	}
	return nil
}

// AxisValues returns the stats in radar axis order.
func (s StatBlock) AxisValues() [6]int {
	return [6]int{s.Cuteness, s.Ferocity, s.Agility, s.Chaos, s.Hunger, s.Defense}
}

// ThreatAverage is the ferocity/chaos mean used for threat-tier
// derivation.
func (s StatBlock) ThreatAverage() float64 {
	return float64(s.Ferocity+s.Chaos) / 2
}
