package policy

import (
	"strings"
	"testing"

	"github.com/ixstats/engine/ixstats/atomic"
)

func builderContext() *Context {
	return &Context{
		Economy: &EconomyContext{
			SelectedComponents: []atomic.SelectedComponent{
				{Type: atomic.InnovationEconomy, EffectivenessScore: 80},
			},
			GDP:              1_000_000,
			TotalWorkforce:   500_000,
			UnemploymentRate: 4,
			Effectiveness:    80,
		},
		Government: &GovernmentContext{
			SelectedComponents: []atomic.SelectedComponent{
				{Type: atomic.ProfessionalBureaucracy, EffectivenessScore: 75},
			},
			TotalBudget:   1_000_000,
			Effectiveness: 75,
		},
		Tax: &TaxContext{
			CollectionEfficiency: 70,
			ComplianceRate:       85,
			Effectiveness:        76,
		},
		Cross: CrossBuilderContext{
			OverallScore:         50,
			UnifiedEffectiveness: 50,
		},
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		policy     Policy
		mutate     func(*Context)
		wantValid  bool
		wantErrSub string
	}{
		{
			name: "affordable policy is valid",
			policy: Policy{
				Name:               "Infrastructure Grant",
				PolicyType:         PolicyTypeEconomic,
				Priority:           PriorityMedium,
				ImplementationCost: 50_000,
			},
			wantValid: true,
		},
		{
			name: "cost over the budget ceiling",
			policy: Policy{
				Name:               "Megaproject",
				PolicyType:         PolicyTypeEconomic,
				Priority:           PriorityHigh,
				ImplementationCost: 200_000, // ceiling is 100_000 on a 1M budget
			},
			wantValid:  false,
			wantErrSub: "budget ceiling",
		},
		{
			name: "cost exactly at the ceiling passes",
			policy: Policy{
				Name:               "Boundary Case",
				PolicyType:         PolicyTypeEconomic,
				ImplementationCost: 100_000,
			},
			wantValid: true,
		},
		{
			name: "economic policy without economy context",
			policy: Policy{
				Name:       "Orphan Policy",
				PolicyType: PolicyTypeEconomic,
			},
			mutate:     func(ctx *Context) { ctx.Economy = nil },
			wantValid:  false,
			wantErrSub: "economy context",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := builderContext()
			if tt.mutate != nil {
				tt.mutate(ctx)
			}

			result := v.Validate(tt.policy, ctx)

			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantErrSub != "" {
				found := false
				for _, e := range result.Errors {
					if strings.Contains(e, tt.wantErrSub) {
						found = true
					}
				}
				if !found {
					t.Errorf("errors %v missing %q", result.Errors, tt.wantErrSub)
				}
			}
		})
	}
}

func TestValidator_Validate_Warnings(t *testing.T) {
	v := NewValidator()

	t.Run("governance without government context warns but stays valid", func(t *testing.T) {
		ctx := builderContext()
		ctx.Government = nil

		result := v.Validate(Policy{Name: "Reform", PolicyType: PolicyTypeGovernance}, ctx)
		if !result.Valid {
			t.Fatalf("expected valid, errors: %v", result.Errors)
		}
		if len(result.Warnings) == 0 {
			t.Error("expected a warning for missing government context")
		}
	})

	t.Run("tax effects without tax context warn", func(t *testing.T) {
		ctx := builderContext()
		ctx.Tax = nil

		result := v.Validate(Policy{
			Name:       "Tax Tune",
			PolicyType: PolicyTypeTax,
			TaxEffects: &TaxEffects{CollectionEfficiency: 2},
		}, ctx)
		if !result.Valid {
			t.Fatalf("expected valid, errors: %v", result.Errors)
		}
		if len(result.Warnings) == 0 {
			t.Error("expected a warning for missing tax context")
		}
	})

	t.Run("missing required component warns with suggestion", func(t *testing.T) {
		ctx := builderContext()

		result := v.Validate(Policy{
			Name:               "R&D Credit",
			PolicyType:         PolicyTypeEconomic,
			RequiredComponents: []string{"Innovation Econmy"}, // typo on purpose
		}, ctx)
		if !result.Valid {
			t.Fatalf("expected valid, errors: %v", result.Errors)
		}

		found := false
		for _, w := range result.Warnings {
			if strings.Contains(w, "closest match") {
				found = true
			}
		}
		if !found {
			t.Errorf("warnings %v missing a closest-match suggestion", result.Warnings)
		}
	})

	t.Run("substring match satisfies the requirement", func(t *testing.T) {
		ctx := builderContext()

		result := v.Validate(Policy{
			Name:               "R&D Credit",
			PolicyType:         PolicyTypeEconomic,
			RequiredComponents: []string{"innovation"},
		}, ctx)
		if len(result.Warnings) != 0 {
			t.Errorf("unexpected warnings: %v", result.Warnings)
		}
	})
}

func TestValidator_CompatibilityScore(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		policy Policy
		mutate func(*Context)
		want   float64
	}{
		{
			name:   "baseline",
			policy: Policy{Name: "Plain"},
			want:   50,
		},
		{
			name:   "strong economy category bonus",
			policy: Policy{Name: "Econ", Category: "economic"},
			want:   70, // economy effectiveness 80 > 70
		},
		{
			name:   "governance category bonus",
			policy: Policy{Name: "Gov", Category: "governance"},
			mutate: func(ctx *Context) { ctx.Government.Effectiveness = 75 },
			want:   70,
		},
		{
			name:   "many synergies",
			policy: Policy{Name: "Plain"},
			mutate: func(ctx *Context) {
				ctx.Cross.Synergies = []string{"a", "b", "c", "d"}
			},
			want: 65,
		},
		{
			name:   "many conflicts",
			policy: Policy{Name: "Plain"},
			mutate: func(ctx *Context) {
				ctx.Cross.Conflicts = []string{"a", "b", "c"}
			},
			want: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := builderContext()
			if tt.mutate != nil {
				tt.mutate(ctx)
			}

			result := v.Validate(tt.policy, ctx)
			if result.CompatibilityScore != tt.want {
				t.Errorf("CompatibilityScore = %v, want %v", result.CompatibilityScore, tt.want)
			}
		})
	}
}

func TestValidator_ExpectedEffectiveness(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		policy Policy
		want   float64
	}{
		{
			name:   "critical priority with cheap cost",
			policy: Policy{Name: "P", Priority: PriorityCritical, ImplementationCost: 10_000},
			want:   80, // 50 + 0 + 20 + 10 (cost under 5% of budget)
		},
		{
			name:   "low priority with expensive cost",
			policy: Policy{Name: "P", Priority: PriorityLow, ImplementationCost: 300_000},
			want:   45, // 50 + 0 + 5 - 10
		},
		{
			name:   "medium priority mid-cost",
			policy: Policy{Name: "P", Priority: PriorityMedium, ImplementationCost: 100_000},
			want:   60, // 50 + 0 + 10, cost ratio 0.1 is neither cheap nor expensive
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.policy, builderContext())
			if result.ExpectedEffectiveness != tt.want {
				t.Errorf("ExpectedEffectiveness = %v, want %v", result.ExpectedEffectiveness, tt.want)
			}
		})
	}
}
