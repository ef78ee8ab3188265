package policy

import (
	"fmt"
	"strings"

	"github.com/ixstats/engine/ixstats/atomic"
	"github.com/sahilm/fuzzy"
)

const (
	// Per-policy budget ceiling: no single policy may cost more than this
	// share of the total government budget.
	budgetCeilingRatio = 0.10

	cheapPolicyRatio     = 0.05
	expensivePolicyRatio = 0.20
)

// Validator checks a proposed policy against a context snapshot. Hard errors
// block application; warnings and recommendations do not.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(p Policy, ctx *Context) ValidationResult {
	result := ValidationResult{
		Valid:                 true,
		Errors:                []string{},
		Warnings:              []string{},
		Recommendations:       []string{},
		CompatibilityScore:    50,
		ExpectedEffectiveness: 50,
	}

	if p.PolicyType == PolicyTypeEconomic && ctx.Economy == nil {
		result.Errors = append(result.Errors, "economic policy requires an economy context")
	}

	if ctx.Government != nil && ctx.Government.TotalBudget > 0 {
		ceiling := ctx.Government.TotalBudget * budgetCeilingRatio
		if p.ImplementationCost > ceiling {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"implementation cost %.0f exceeds the per-policy budget ceiling %.0f (10%% of budget)",
				p.ImplementationCost, ceiling))
		}
	}

	if p.PolicyType == PolicyTypeGovernance && ctx.Government == nil {
		result.Warnings = append(result.Warnings, "governance policy proposed without a government context")
	}
	if p.TaxEffects != nil && ctx.Tax == nil {
		result.Warnings = append(result.Warnings, "policy affects taxation but no tax context is present")
	}

	v.checkRequiredComponents(p, ctx, &result)

	result.CompatibilityScore = v.compatibilityScore(p, ctx)
	result.ExpectedEffectiveness = v.expectedEffectiveness(p, ctx)

	if result.CompatibilityScore < 70 {
		result.Recommendations = append(result.Recommendations,
			"Consider adjusting builder components to improve policy compatibility")
	}
	if len(ctx.Cross.Conflicts) > 0 {
		result.Recommendations = append(result.Recommendations,
			"Resolve cross-system conflicts before applying for better outcomes")
	}
	if result.ExpectedEffectiveness < 50 {
		result.Recommendations = append(result.Recommendations,
			"Expected effectiveness is low; a higher priority or lower cost would help")
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// checkRequiredComponents substring-matches each required component against
// the display names of the selected economy and government components. A miss
// is a warning, with the closest catalogue names suggested.
func (v *Validator) checkRequiredComponents(p Policy, ctx *Context, result *ValidationResult) {
	if len(p.RequiredComponents) == 0 {
		return
	}

	var names []string
	if ctx.Economy != nil {
		for _, sc := range ctx.Economy.SelectedComponents {
			names = append(names, atomic.DisplayName(sc.Type))
		}
	}
	if ctx.Government != nil {
		for _, sc := range ctx.Government.SelectedComponents {
			names = append(names, atomic.DisplayName(sc.Type))
		}
	}

	for _, required := range p.RequiredComponents {
		found := false
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), strings.ToLower(required)) {
				found = true
				break
			}
		}
		if found {
			continue
		}

		warning := fmt.Sprintf("required component %q not found among selected components", required)
		if matches := fuzzy.Find(required, names); len(matches) > 0 {
			warning += fmt.Sprintf("; closest match: %s", matches[0].Str)
		}
		result.Warnings = append(result.Warnings, warning)
	}
}

func (v *Validator) compatibilityScore(p Policy, ctx *Context) float64 {
	score := 50.0

	if p.Category == "economic" && ctx.Economy != nil && ctx.Economy.Effectiveness > 70 {
		score += 20
	}
	if p.Category == "governance" && ctx.Government != nil && ctx.Government.Effectiveness > 70 {
		score += 20
	}
	if len(ctx.Cross.Synergies) > 3 {
		score += 15
	}
	if len(ctx.Cross.Conflicts) > 2 {
		score -= 15
	}

	return clampScore(score)
}

func (v *Validator) expectedEffectiveness(p Policy, ctx *Context) float64 {
	effectiveness := 50.0
	effectiveness += (ctx.Cross.UnifiedEffectiveness - 50) / 2

	switch p.Priority {
	case PriorityCritical:
		effectiveness += 20
	case PriorityHigh:
		effectiveness += 15
	case PriorityMedium:
		effectiveness += 10
	case PriorityLow:
		effectiveness += 5
	}

	if ctx.Government != nil && ctx.Government.TotalBudget > 0 {
		costRatio := p.ImplementationCost / ctx.Government.TotalBudget
		if costRatio < cheapPolicyRatio {
			effectiveness += 10
		} else if costRatio > expensivePolicyRatio {
			effectiveness -= 10
		}
	}

	return clampScore(effectiveness)
}
