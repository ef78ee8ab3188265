package atomic

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculator_CalculateAtomicSynergies(t *testing.T) {
	calc := NewCalculator(DefaultRegistry(), DefaultConfig())

	tests := []struct {
		name            string
		mine            []SelectedComponent
		embassyStrength float64
		wantCategories  []Category
		wantMatchScore  float64
	}{
		{
			name: "single category above threshold",
			mine: []SelectedComponent{
				{Type: FederalSystem, EffectivenessScore: 80},
			},
			embassyStrength: 60,
			wantCategories:  []Category{CategoryPowerStructure},
			wantMatchScore:  70, // (80 + 60) / 2
		},
		{
			name: "averaged within category",
			mine: []SelectedComponent{
				{Type: CentralizedPower, EffectivenessScore: 60},
				{Type: UnitaryState, EffectivenessScore: 100},
			},
			embassyStrength: 40,
			wantCategories:  []Category{CategoryPowerStructure},
			wantMatchScore:  60, // (80 avg + 40) / 2
		},
		{
			name: "below threshold omitted",
			mine: []SelectedComponent{
				{Type: FederalSystem, EffectivenessScore: 20},
			},
			embassyStrength: 10,
			wantCategories:  nil,
		},
		{
			name: "match score capped at 100",
			mine: []SelectedComponent{
				{Type: DemocraticProcess, EffectivenessScore: 200},
			},
			embassyStrength: 100,
			wantCategories:  []Category{CategoryDecisionMaking},
			wantMatchScore:  100,
		},
		{
			name: "economy components belong to no scored category",
			mine: []SelectedComponent{
				{Type: InnovationEconomy, EffectivenessScore: 90},
			},
			embassyStrength: 90,
			wantCategories:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateAtomicSynergies(tt.mine, tt.embassyStrength)

			if len(got) != len(tt.wantCategories) {
				t.Fatalf("CalculateAtomicSynergies() returned %d results, want %d", len(got), len(tt.wantCategories))
			}
			for i, want := range tt.wantCategories {
				if got[i].Category != want {
					t.Errorf("result[%d].Category = %s, want %s", i, got[i].Category, want)
				}
				if !almostEqual(got[i].MatchScore, tt.wantMatchScore) {
					t.Errorf("result[%d].MatchScore = %v, want %v", i, got[i].MatchScore, tt.wantMatchScore)
				}
			}
		})
	}
}

func TestCalculator_CalculateAtomicSynergies_Benefits(t *testing.T) {
	calc := NewCalculator(DefaultRegistry(), DefaultConfig())

	got := calc.CalculateAtomicSynergies([]SelectedComponent{
		{Type: FederalSystem, EffectivenessScore: 80},
	}, 60)

	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}

	// matchScore 70 with the default weights
	if !almostEqual(got[0].EconomicBenefit, 2.8) {
		t.Errorf("EconomicBenefit = %v, want 2.8", got[0].EconomicBenefit)
	}
	if !almostEqual(got[0].DiplomaticBenefit, 4.2) {
		t.Errorf("DiplomaticBenefit = %v, want 4.2", got[0].DiplomaticBenefit)
	}
	if !almostEqual(got[0].CulturalBenefit, 2.1) {
		t.Errorf("CulturalBenefit = %v, want 2.1", got[0].CulturalBenefit)
	}

	if got[0].DiplomaticBenefit <= got[0].EconomicBenefit || got[0].EconomicBenefit <= got[0].CulturalBenefit {
		t.Errorf("benefit ordering broken: diplomatic %v, economic %v, cultural %v",
			got[0].DiplomaticBenefit, got[0].EconomicBenefit, got[0].CulturalBenefit)
	}
}

func TestCalculator_SynergyBonus(t *testing.T) {
	calc := NewCalculator(DefaultRegistry(), DefaultConfig())

	tests := []struct {
		name     string
		selected []ComponentType
		live     []Synergy
		want     float64
	}{
		{
			name:     "mirrored pair counted once",
			selected: []ComponentType{FederalSystem, DemocraticProcess},
			live: []Synergy{
				{ComponentA: FederalSystem, ComponentB: DemocraticProcess, Type: SynergyStrong, BonusPercent: 15},
				{ComponentA: DemocraticProcess, ComponentB: FederalSystem, Type: SynergyStrong, BonusPercent: 15},
			},
			want: 15,
		},
		{
			name:     "unselected endpoint ignored",
			selected: []ComponentType{FederalSystem},
			live: []Synergy{
				{ComponentA: FederalSystem, ComponentB: DemocraticProcess, Type: SynergyStrong, BonusPercent: 15},
			},
			want: 0,
		},
		{
			name:     "conflict subtracts",
			selected: []ComponentType{FederalSystem, CentralizedPower},
			live: []Synergy{
				{ComponentA: FederalSystem, ComponentB: CentralizedPower, Type: SynergyConflict, BonusPercent: -20},
			},
			want: -20,
		},
		{
			name:     "registry fallback for declared pair",
			selected: []ComponentType{FederalSystem, DemocraticProcess},
			live:     nil,
			want:     15, // declared synergy expanded with the strong bonus
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.SynergyBonus(tt.selected, tt.live); !almostEqual(got, tt.want) {
				t.Errorf("SynergyBonus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculator_SynergiesFor_Fallback(t *testing.T) {
	calc := NewCalculator(DefaultRegistry(), DefaultConfig())

	got := calc.SynergiesFor(CentralizedPower, nil)
	if len(got) == 0 {
		t.Fatal("expected registry fallback synergies, got none")
	}

	for _, s := range got {
		switch s.Type {
		case SynergyStrong:
			if s.BonusPercent != 15 {
				t.Errorf("strong fallback bonus = %v, want 15", s.BonusPercent)
			}
		case SynergyConflict:
			if s.BonusPercent != -20 {
				t.Errorf("conflict fallback bonus = %v, want -20", s.BonusPercent)
			}
		default:
			t.Errorf("unexpected fallback synergy type %s", s.Type)
		}
		if s.ComponentA != CentralizedPower {
			t.Errorf("fallback row anchored at %s, want %s", s.ComponentA, CentralizedPower)
		}
	}
}

func TestCalculator_SynergiesFor_LiveFilter(t *testing.T) {
	calc := NewCalculator(DefaultRegistry(), DefaultConfig())

	live := []Synergy{
		{ComponentA: FederalSystem, ComponentB: DemocraticProcess, Type: SynergyStrong, BonusPercent: 12},
		{ComponentA: RuleOfLaw, ComponentB: FreePress, Type: SynergyModerate, BonusPercent: 8},
	}

	got := calc.SynergiesFor(FederalSystem, live)
	if len(got) != 1 {
		t.Fatalf("expected 1 filtered synergy, got %d", len(got))
	}
	if got[0].BonusPercent != 12 {
		t.Errorf("filtered bonus = %v, want 12", got[0].BonusPercent)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   ComponentType
		want string
	}{
		{InnovationEconomy, "Innovation Economy"},
		{RuleOfLaw, "Rule Of Law"},
		{CentralBank, "Central Bank"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
