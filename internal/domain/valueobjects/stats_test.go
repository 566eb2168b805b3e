package valueobjects

import "testing"

func TestStatBlock_Validate(t *testing.T) {
	tests := []struct {
		name    string
		stats   StatBlock
		wantErr bool
	}{
		{
			name:  "all in range",
			stats: StatBlock{Cuteness: 0, Ferocity: 100, Agility: 50, Chaos: 50, Hunger: 50, Defense: 50},
		},
		{
			name:    "negative stat",
			stats:   StatBlock{Cuteness: -1, Ferocity: 50, Agility: 50, Chaos: 50, Hunger: 50, Defense: 50},
			wantErr: true,
		},
		{
			name:    "stat above 100",
			stats:   StatBlock{Cuteness: 50, Ferocity: 50, Agility: 50, Chaos: 101, Hunger: 50, Defense: 50},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatBlock_AxisValues(t *testing.T) {
	stats := StatBlock{Cuteness: 1, Ferocity: 2, Agility: 3, Chaos: 4, Hunger: 5, Defense: 6}

	got := stats.AxisValues()
	want := [6]int{1, 2, 3, 4, 5, 6}
	if got != want {
		t.Errorf("AxisValues() = %v, want %v (fixed radar order)", got, want)
	}
}

func TestStatBlock_ThreatAverage(t *testing.T) {
	stats := StatBlock{Ferocity: 90, Chaos: 75}

	if avg := stats.ThreatAverage(); avg != 82.5 {
		t.Errorf("ThreatAverage() = %v, want 82.5", avg)
	}
}
