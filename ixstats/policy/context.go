package policy

import (
	"time"

	"github.com/ixstats/engine/ixstats/atomic"
	"github.com/ixstats/engine/ixstats/database/models"
)

// TaxEffectivenessFunc computes atomic tax effectiveness from the current
// collection efficiency and compliance rate. The production implementation
// lives with the tax simulation; DefaultTaxEffectiveness is its stand-in.
type TaxEffectivenessFunc func(collectionEfficiency, complianceRate float64) float64

// DefaultTaxEffectiveness weights collection ahead of compliance.
func DefaultTaxEffectiveness(collectionEfficiency, complianceRate float64) float64 {
	return clampScore(collectionEfficiency*0.6 + complianceRate*0.4)
}

// CrossBuilderAnalyzer combines the economy and government selections into
// cross-system synergies and conflicts. Live synergy rows take precedence
// over the static registry when supplied. The extractor only shapes and
// labels its result.
type CrossBuilderAnalyzer interface {
	Analyze(economy, government []atomic.SelectedComponent, live []atomic.Synergy) CrossBuilderContext
}

// Extractor assembles immutable policy contexts from nation state. All
// collaborators are injected; it reads nothing ambient.
type Extractor struct {
	registry         atomic.Registry
	calc             *atomic.Calculator
	taxEffectiveness TaxEffectivenessFunc
	cross            CrossBuilderAnalyzer
}

func NewExtractor(registry atomic.Registry, calc *atomic.Calculator, taxFn TaxEffectivenessFunc, cross CrossBuilderAnalyzer) *Extractor {
	if taxFn == nil {
		taxFn = DefaultTaxEffectiveness
	}
	if cross == nil {
		cross = NewRegistryCrossAnalyzer(calc)
	}
	return &Extractor{
		registry:         registry,
		calc:             calc,
		taxEffectiveness: taxFn,
		cross:            cross,
	}
}

// ContextFromNation builds a fully-populated snapshot for one nation. Live
// synergy rows, when present, drive the cross-builder analysis instead of the
// static registry. The returned context is fresh per call and never persisted.
func (e *Extractor) ContextFromNation(n *models.Nation, now time.Time, live []atomic.Synergy) *Context {
	economySelected := e.resolveComponents(n.EconomyComponents)
	governmentSelected := e.resolveComponents(n.GovernmentComponents)

	economy := &EconomyContext{
		SelectedComponents: economySelected,
		GDP:                n.GDP,
		GDPGrowthRate:      n.GDPGrowthRate,
		InflationRate:      n.InflationRate,
		TotalWorkforce:     n.TotalWorkforce,
		UnemploymentRate:   n.UnemploymentRate,
		Effectiveness:      meanEffectiveness(economySelected),
	}

	var government *GovernmentContext
	if len(governmentSelected) > 0 {
		government = &GovernmentContext{
			SelectedComponents: governmentSelected,
			TotalBudget:        n.GovernmentBudget,
			Effectiveness:      meanEffectiveness(governmentSelected),
		}
	}

	var tax *TaxContext
	if n.TaxCollectionEfficiency > 0 || n.TaxComplianceRate > 0 {
		tax = &TaxContext{
			CollectionEfficiency: n.TaxCollectionEfficiency,
			ComplianceRate:       n.TaxComplianceRate,
			Effectiveness:        e.taxEffectiveness(n.TaxCollectionEfficiency, n.TaxComplianceRate),
			Recommendations:      taxRecommendations(n.TaxCollectionEfficiency, n.TaxComplianceRate),
		}
	}

	return &Context{
		Economy:    economy,
		Government: government,
		Tax:        tax,
		Cross:      e.cross.Analyze(economySelected, governmentSelected, live),
		Timestamp:  now,
	}
}

// resolveComponents normalizes stored component tags against the registry,
// dropping tags the catalogue no longer knows.
func (e *Extractor) resolveComponents(tags []string) []atomic.SelectedComponent {
	var selected []atomic.SelectedComponent
	for _, tag := range tags {
		component, ok := e.registry.Lookup(atomic.ComponentType(tag))
		if !ok {
			continue
		}
		selected = append(selected, atomic.SelectedComponent{
			Type:               component.Type,
			EffectivenessScore: component.EffectivenessScore,
		})
	}
	return selected
}

func meanEffectiveness(selected []atomic.SelectedComponent) float64 {
	if len(selected) == 0 {
		return 0
	}
	var sum float64
	for _, sc := range selected {
		sum += sc.EffectivenessScore
	}
	return sum / float64(len(selected))
}

func taxRecommendations(collectionEfficiency, complianceRate float64) []string {
	var recs []string
	if collectionEfficiency < 70 {
		recs = append(recs, "Modernize collection infrastructure to raise collection efficiency")
	}
	if complianceRate < 80 {
		recs = append(recs, "Launch a taxpayer compliance program")
	}
	return recs
}

// registryCrossAnalyzer derives cross-builder interactions: a synergy or
// conflict whose endpoints sit in different builders becomes a cross-system
// entry. Live rows are consulted first; without them the calculator falls
// back to the static registry's declarations.
type registryCrossAnalyzer struct {
	calc *atomic.Calculator
}

func NewRegistryCrossAnalyzer(calc *atomic.Calculator) CrossBuilderAnalyzer {
	return &registryCrossAnalyzer{calc: calc}
}

func (a *registryCrossAnalyzer) Analyze(economy, government []atomic.SelectedComponent, live []atomic.Synergy) CrossBuilderContext {
	governmentSet := make(map[atomic.ComponentType]struct{}, len(government))
	for _, sc := range government {
		governmentSet[sc.Type] = struct{}{}
	}

	var synergies, conflicts []string
	for _, sc := range economy {
		for _, rel := range a.calc.SynergiesFor(sc.Type, live) {
			partner := rel.ComponentB
			if partner == sc.Type {
				partner = rel.ComponentA
			}
			if _, held := governmentSet[partner]; !held {
				continue
			}
			if rel.BonusPercent < 0 {
				conflicts = append(conflicts, atomic.DisplayName(sc.Type)+" vs "+atomic.DisplayName(partner))
			} else {
				synergies = append(synergies, atomic.DisplayName(sc.Type)+" + "+atomic.DisplayName(partner))
			}
		}
	}

	all := make([]atomic.ComponentType, 0, len(economy)+len(government))
	for _, sc := range economy {
		all = append(all, sc.Type)
	}
	for _, sc := range government {
		all = append(all, sc.Type)
	}
	bonus := a.calc.SynergyBonus(all, live)

	combined := append(append([]atomic.SelectedComponent{}, economy...), government...)
	unified := clampScore(meanEffectiveness(combined) + bonus/2)

	return CrossBuilderContext{
		Synergies:            synergies,
		Conflicts:            conflicts,
		OverallScore:         clampScore(50 + bonus),
		UnifiedEffectiveness: unified,
	}
}
