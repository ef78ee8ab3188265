package policy

import (
	"testing"
	"time"

	"github.com/ixstats/engine/ixstats/atomic"
	"github.com/ixstats/engine/ixstats/database/models"
)

func testExtractor() *Extractor {
	registry := atomic.DefaultRegistry()
	calc := atomic.NewCalculator(registry, atomic.DefaultConfig())
	return NewExtractor(registry, calc, nil, nil)
}

func testNation() *models.Nation {
	return &models.Nation{
		NationID:                "caphiria",
		Name:                    "Caphiria",
		GovernmentBudget:        1_000_000,
		GDP:                     5_000_000,
		GDPGrowthRate:           2.5,
		TotalWorkforce:          800_000,
		UnemploymentRate:        4.2,
		EconomyComponents:       []string{"innovation_economy", "free_market"},
		GovernmentComponents:    []string{"professional_bureaucracy", "rule_of_law"},
		TaxCollectionEfficiency: 70,
		TaxComplianceRate:       85,
	}
}

func TestExtractor_ContextFromNation(t *testing.T) {
	e := testExtractor()
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	ctx := e.ContextFromNation(testNation(), now, nil)

	if ctx.Economy == nil {
		t.Fatal("economy context must always be populated")
	}
	if len(ctx.Economy.SelectedComponents) != 2 {
		t.Errorf("economy components = %d, want 2", len(ctx.Economy.SelectedComponents))
	}
	if ctx.Economy.GDP != 5_000_000 || ctx.Economy.UnemploymentRate != 4.2 {
		t.Errorf("economy snapshot not carried over: %+v", ctx.Economy)
	}

	if ctx.Government == nil {
		t.Fatal("government context missing despite selected components")
	}
	if ctx.Government.TotalBudget != 1_000_000 {
		t.Errorf("TotalBudget = %v, want 1000000", ctx.Government.TotalBudget)
	}

	if ctx.Tax == nil {
		t.Fatal("tax context missing despite configured rates")
	}
	// 70*0.6 + 85*0.4
	if ctx.Tax.Effectiveness != 76 {
		t.Errorf("tax effectiveness = %v, want 76", ctx.Tax.Effectiveness)
	}

	if !ctx.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", ctx.Timestamp, now)
	}
}

func TestExtractor_ContextFromNation_OptionalSubsystems(t *testing.T) {
	e := testExtractor()
	now := time.Now()

	t.Run("no government components", func(t *testing.T) {
		nation := testNation()
		nation.GovernmentComponents = nil

		ctx := e.ContextFromNation(nation, now, nil)
		if ctx.Government != nil {
			t.Error("government context should be nil without selected components")
		}
		if ctx.Economy == nil {
			t.Error("economy context must survive a missing government")
		}
	})

	t.Run("no tax configuration", func(t *testing.T) {
		nation := testNation()
		nation.TaxCollectionEfficiency = 0
		nation.TaxComplianceRate = 0

		ctx := e.ContextFromNation(nation, now, nil)
		if ctx.Tax != nil {
			t.Error("tax context should be nil without configured rates")
		}
	})

	t.Run("unknown component tags are dropped", func(t *testing.T) {
		nation := testNation()
		nation.EconomyComponents = []string{"innovation_economy", "moon_mining"}

		ctx := e.ContextFromNation(nation, now, nil)
		if len(ctx.Economy.SelectedComponents) != 1 {
			t.Errorf("economy components = %d, want 1 after dropping the unknown tag",
				len(ctx.Economy.SelectedComponents))
		}
	})
}

func TestExtractor_TaxRecommendations(t *testing.T) {
	e := testExtractor()
	now := time.Now()

	nation := testNation()
	nation.TaxCollectionEfficiency = 50
	nation.TaxComplianceRate = 60

	ctx := e.ContextFromNation(nation, now, nil)
	if ctx.Tax == nil {
		t.Fatal("tax context missing")
	}
	if len(ctx.Tax.Recommendations) != 2 {
		t.Errorf("tax recommendations = %v, want both collection and compliance advice",
			ctx.Tax.Recommendations)
	}
}

func TestRegistryCrossAnalyzer(t *testing.T) {
	registry := atomic.DefaultRegistry()
	calc := atomic.NewCalculator(registry, atomic.DefaultConfig())
	analyzer := NewRegistryCrossAnalyzer(calc)

	economy := []atomic.SelectedComponent{
		{Type: atomic.FreeMarket, EffectivenessScore: 70},
	}
	government := []atomic.SelectedComponent{
		{Type: atomic.ProfessionalBureaucracy, EffectivenessScore: 80},
	}

	t.Run("no cross-builder relations", func(t *testing.T) {
		got := analyzer.Analyze(economy, nil, nil)
		if len(got.Synergies) != 0 || len(got.Conflicts) != 0 {
			t.Errorf("unexpected relations: %+v", got)
		}
		if got.OverallScore != 50 {
			t.Errorf("OverallScore = %v, want neutral 50", got.OverallScore)
		}
	})

	t.Run("unified effectiveness reflects component mean", func(t *testing.T) {
		got := analyzer.Analyze(economy, government, nil)
		// No declared relation between the pair, so unified is the plain mean
		if got.UnifiedEffectiveness != 75 {
			t.Errorf("UnifiedEffectiveness = %v, want 75", got.UnifiedEffectiveness)
		}
	})

	t.Run("live rows override the registry", func(t *testing.T) {
		live := []atomic.Synergy{
			{
				ComponentA:   atomic.FreeMarket,
				ComponentB:   atomic.ProfessionalBureaucracy,
				Type:         atomic.SynergyModerate,
				BonusPercent: 10,
			},
		}

		got := analyzer.Analyze(economy, government, live)
		if len(got.Synergies) != 1 || got.Synergies[0] != "Free Market + Professional Bureaucracy" {
			t.Errorf("Synergies = %v, want the live pair", got.Synergies)
		}
		if got.OverallScore != 60 {
			t.Errorf("OverallScore = %v, want 50 + live bonus 10", got.OverallScore)
		}
		if got.UnifiedEffectiveness != 80 {
			t.Errorf("UnifiedEffectiveness = %v, want mean 75 + bonus/2", got.UnifiedEffectiveness)
		}
	})

	t.Run("live conflict rows surface as conflicts", func(t *testing.T) {
		live := []atomic.Synergy{
			{
				ComponentA:   atomic.ProfessionalBureaucracy,
				ComponentB:   atomic.FreeMarket,
				Type:         atomic.SynergyConflict,
				BonusPercent: -20,
			},
		}

		got := analyzer.Analyze(economy, government, live)
		if len(got.Conflicts) != 1 || got.Conflicts[0] != "Free Market vs Professional Bureaucracy" {
			t.Errorf("Conflicts = %v, want the live conflict pair", got.Conflicts)
		}
		if got.OverallScore != 30 {
			t.Errorf("OverallScore = %v, want 50 - 20", got.OverallScore)
		}
	})
}

func TestSynergiesFromRows(t *testing.T) {
	rows := []*models.ComponentSynergy{
		{
			ComponentA:   "free_market",
			ComponentB:   "professional_bureaucracy",
			SynergyType:  "MODERATE",
			BonusPercent: 10,
			Description:  "markets need clean administration",
		},
	}

	got := synergiesFromRows(rows)
	if len(got) != 1 {
		t.Fatalf("synergiesFromRows() returned %d rows, want 1", len(got))
	}
	want := atomic.Synergy{
		ComponentA:   atomic.FreeMarket,
		ComponentB:   atomic.ProfessionalBureaucracy,
		Type:         atomic.SynergyModerate,
		BonusPercent: 10,
		Description:  "markets need clean administration",
	}
	if got[0] != want {
		t.Errorf("synergiesFromRows()[0] = %+v, want %+v", got[0], want)
	}

	if synergiesFromRows(nil) != nil {
		t.Error("synergiesFromRows(nil) should yield no rows")
	}
}

func TestDefaultTaxEffectiveness(t *testing.T) {
	tests := []struct {
		collection float64
		compliance float64
		want       float64
	}{
		{100, 100, 100},
		{0, 0, 0},
		{70, 85, 76},
		{200, 200, 100}, // clamped
	}

	for _, tt := range tests {
		if got := DefaultTaxEffectiveness(tt.collection, tt.compliance); got != tt.want {
			t.Errorf("DefaultTaxEffectiveness(%v, %v) = %v, want %v",
				tt.collection, tt.compliance, got, tt.want)
		}
	}
}
