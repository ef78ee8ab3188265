package policy

import (
	"fmt"
	"math"
)

// Applier turns a policy's declared effect deltas into PolicyChange records.
// Application is atomic: any failure returns zero changes and the original
// unified effectiveness.
type Applier struct{}

func NewApplier() *Applier {
	return &Applier{}
}

const effectivenessPerChange = 0.5

func (a *Applier) Apply(p Policy, ctx *Context) ApplyResult {
	previous := ctx.Cross.UnifiedEffectiveness

	changes, err := a.collectChanges(p, ctx)
	if err != nil {
		return ApplyResult{
			Success:              false,
			Changes:              nil,
			UnifiedEffectiveness: previous,
			Error:                err.Error(),
		}
	}

	unified := math.Min(100, previous+effectivenessPerChange*float64(len(changes)))
	return ApplyResult{
		Success:              true,
		Changes:              changes,
		UnifiedEffectiveness: unified,
	}
}

// collectChanges validates every declared effect against the snapshot before
// recording anything, so a failure on the last effect leaves no partial state.
func (a *Applier) collectChanges(p Policy, ctx *Context) ([]PolicyChange, error) {
	var changes []PolicyChange

	if p.EconomicEffects != nil {
		if ctx.Economy == nil {
			return nil, fmt.Errorf("policy %q declares economic effects but no economy context is present", p.Name)
		}
		e := ctx.Economy
		changes = appendChange(changes, "economy", "gdpGrowthRate", e.GDPGrowthRate, p.EconomicEffects.GDPGrowthRate, "GDP growth rate adjusted")
		changes = appendChange(changes, "economy", "inflationRate", e.InflationRate, p.EconomicEffects.InflationRate, "Inflation rate adjusted")
		changes = appendChange(changes, "economy", "unemploymentRate", e.UnemploymentRate, p.EconomicEffects.UnemploymentRate, "Unemployment rate adjusted")
	}

	if p.GovernmentEffects != nil {
		if ctx.Government == nil {
			return nil, fmt.Errorf("policy %q declares government effects but no government context is present", p.Name)
		}
		g := ctx.Government
		changes = appendChange(changes, "government", "effectiveness", g.Effectiveness, p.GovernmentEffects.Efficiency, "Government effectiveness adjusted")
		changes = appendChange(changes, "government", "totalBudget", g.TotalBudget, p.GovernmentEffects.BudgetAllocation, "Budget allocation adjusted")
	}

	if p.TaxEffects != nil {
		if ctx.Tax == nil {
			return nil, fmt.Errorf("policy %q declares tax effects but no tax context is present", p.Name)
		}
		t := ctx.Tax
		changes = appendChange(changes, "tax", "collectionEfficiency", t.CollectionEfficiency, p.TaxEffects.CollectionEfficiency, "Collection efficiency adjusted")
		changes = appendChange(changes, "tax", "complianceRate", t.ComplianceRate, p.TaxEffects.ComplianceRate, "Compliance rate adjusted")
	}

	return changes, nil
}

// appendChange records a delta unless it is zero-valued.
func appendChange(changes []PolicyChange, system, field string, oldValue, delta float64, description string) []PolicyChange {
	if delta == 0 {
		return changes
	}
	return append(changes, PolicyChange{
		System:      system,
		Field:       field,
		OldValue:    oldValue,
		NewValue:    oldValue + delta,
		Description: fmt.Sprintf("%s by %+.2f", description, delta),
	})
}
