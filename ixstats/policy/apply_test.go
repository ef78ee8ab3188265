package policy

import (
	"strings"
	"testing"
)

func TestApplier_Apply(t *testing.T) {
	a := NewApplier()

	t.Run("all declared effects become changes", func(t *testing.T) {
		ctx := builderContext()
		ctx.Cross.UnifiedEffectiveness = 60

		result := a.Apply(Policy{
			Name:            "Full Spectrum",
			EconomicEffects: &EconomicEffects{GDPGrowthRate: 0.5, UnemploymentRate: -0.3},
			GovernmentEffects: &GovernmentEffects{
				Efficiency: 2,
			},
			TaxEffects: &TaxEffects{ComplianceRate: 1.5},
		}, ctx)

		if !result.Success {
			t.Fatalf("Apply() failed: %s", result.Error)
		}
		if len(result.Changes) != 4 {
			t.Fatalf("Apply() recorded %d changes, want 4: %+v", len(result.Changes), result.Changes)
		}
		// 60 + 0.5 per change
		if result.UnifiedEffectiveness != 62 {
			t.Errorf("UnifiedEffectiveness = %v, want 62", result.UnifiedEffectiveness)
		}
	})

	t.Run("zero deltas are skipped", func(t *testing.T) {
		result := a.Apply(Policy{
			Name:            "Sparse",
			EconomicEffects: &EconomicEffects{GDPGrowthRate: 1},
		}, builderContext())

		if !result.Success {
			t.Fatalf("Apply() failed: %s", result.Error)
		}
		if len(result.Changes) != 1 {
			t.Errorf("Apply() recorded %d changes, want 1", len(result.Changes))
		}
	})

	t.Run("change records old and new values", func(t *testing.T) {
		ctx := builderContext()
		ctx.Economy.GDPGrowthRate = 2.0

		result := a.Apply(Policy{
			Name:            "Growth Push",
			EconomicEffects: &EconomicEffects{GDPGrowthRate: 0.5},
		}, ctx)

		if !result.Success {
			t.Fatalf("Apply() failed: %s", result.Error)
		}
		change := result.Changes[0]
		if change.System != "economy" || change.Field != "gdpGrowthRate" {
			t.Errorf("change = %s/%s, want economy/gdpGrowthRate", change.System, change.Field)
		}
		if change.OldValue != 2.0 || change.NewValue != 2.5 {
			t.Errorf("change values = %v -> %v, want 2 -> 2.5", change.OldValue, change.NewValue)
		}
	})

	t.Run("effectiveness is capped at 100", func(t *testing.T) {
		ctx := builderContext()
		ctx.Cross.UnifiedEffectiveness = 99.8

		result := a.Apply(Policy{
			Name:            "Cap Check",
			EconomicEffects: &EconomicEffects{GDPGrowthRate: 1, InflationRate: -0.5},
		}, ctx)

		if !result.Success {
			t.Fatalf("Apply() failed: %s", result.Error)
		}
		if result.UnifiedEffectiveness != 100 {
			t.Errorf("UnifiedEffectiveness = %v, want capped at 100", result.UnifiedEffectiveness)
		}
	})
}

// A missing subsystem fails the whole application: no partial changes, the
// effectiveness stays where it was.
func TestApplier_Apply_Atomic(t *testing.T) {
	a := NewApplier()

	tests := []struct {
		name   string
		policy Policy
		mutate func(*Context)
	}{
		{
			name: "government effects without government context",
			policy: Policy{
				Name:              "Broken",
				EconomicEffects:   &EconomicEffects{GDPGrowthRate: 1},
				GovernmentEffects: &GovernmentEffects{Efficiency: 2},
			},
			mutate: func(ctx *Context) { ctx.Government = nil },
		},
		{
			name: "tax effects without tax context",
			policy: Policy{
				Name:            "Broken",
				EconomicEffects: &EconomicEffects{GDPGrowthRate: 1},
				TaxEffects:      &TaxEffects{ComplianceRate: 1},
			},
			mutate: func(ctx *Context) { ctx.Tax = nil },
		},
		{
			name: "economic effects without economy context",
			policy: Policy{
				Name:            "Broken",
				EconomicEffects: &EconomicEffects{GDPGrowthRate: 1},
			},
			mutate: func(ctx *Context) { ctx.Economy = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := builderContext()
			ctx.Cross.UnifiedEffectiveness = 55
			tt.mutate(ctx)

			result := a.Apply(tt.policy, ctx)

			if result.Success {
				t.Fatal("Apply() succeeded, want failure")
			}
			if len(result.Changes) != 0 {
				t.Errorf("Apply() left %d partial changes: %+v", len(result.Changes), result.Changes)
			}
			if result.UnifiedEffectiveness != 55 {
				t.Errorf("UnifiedEffectiveness moved to %v on failure", result.UnifiedEffectiveness)
			}
			if !strings.Contains(result.Error, "Broken") {
				t.Errorf("error %q does not name the policy", result.Error)
			}
		})
	}
}
