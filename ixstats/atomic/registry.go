// Package atomic holds the static catalogue of governance, economy and tax
// building blocks and the synergy scoring over them.
package atomic

import "strings"

type ComponentType string

// Government components, grouped into the five scored categories.
const (
	CentralizedPower  ComponentType = "centralized_power"
	FederalSystem     ComponentType = "federal_system"
	ConfederateSystem ComponentType = "confederate_system"
	UnitaryState      ComponentType = "unitary_state"

	AutocraticProcess   ComponentType = "autocratic_process"
	DemocraticProcess   ComponentType = "democratic_process"
	TechnocraticProcess ComponentType = "technocratic_process"
	ConsensusProcess    ComponentType = "consensus_process"

	ElectoralLegitimacy   ComponentType = "electoral_legitimacy"
	TraditionalLegitimacy ComponentType = "traditional_legitimacy"
	PerformanceLegitimacy ComponentType = "performance_legitimacy"
	CharismaticLegitimacy ComponentType = "charismatic_legitimacy"

	ProfessionalBureaucracy ComponentType = "professional_bureaucracy"
	IndependentJudiciary    ComponentType = "independent_judiciary"
	CentralBank             ComponentType = "central_bank"
	MilitaryAdministration  ComponentType = "military_administration"

	RuleOfLaw          ComponentType = "rule_of_law"
	SurveillanceSystem ComponentType = "surveillance_system"
	FreePress          ComponentType = "free_press"
	PartyControl       ComponentType = "party_control"
)

// Economy and tax components. They carry effectiveness scores for the policy
// engine but do not belong to a scored synergy category.
const (
	InnovationEconomy   ComponentType = "innovation_economy"
	ExportOriented      ComponentType = "export_oriented"
	StateLedDevelopment ComponentType = "state_led_development"
	FreeMarket          ComponentType = "free_market"
	MixedEconomy        ComponentType = "mixed_economy"

	ProgressiveTaxation ComponentType = "progressive_taxation"
	FlatTaxation        ComponentType = "flat_taxation"
	ConsumptionTax      ComponentType = "consumption_tax"
)

type Category string

const (
	CategoryPowerStructure Category = "power_structure"
	CategoryDecisionMaking Category = "decision_making"
	CategoryLegitimacy     Category = "legitimacy"
	CategoryInstitutions   Category = "institutions"
	CategoryControl        Category = "control"
)

// Categories in scoring order.
var Categories = []Category{
	CategoryPowerStructure,
	CategoryDecisionMaking,
	CategoryLegitimacy,
	CategoryInstitutions,
	CategoryControl,
}

var categoryComponents = map[Category][]ComponentType{
	CategoryPowerStructure: {CentralizedPower, FederalSystem, ConfederateSystem, UnitaryState},
	CategoryDecisionMaking: {AutocraticProcess, DemocraticProcess, TechnocraticProcess, ConsensusProcess},
	CategoryLegitimacy:     {ElectoralLegitimacy, TraditionalLegitimacy, PerformanceLegitimacy, CharismaticLegitimacy},
	CategoryInstitutions:   {ProfessionalBureaucracy, IndependentJudiciary, CentralBank, MilitaryAdministration},
	CategoryControl:        {RuleOfLaw, SurveillanceSystem, FreePress, PartyControl},
}

// Component is an immutable catalogue entry. Synergies amplify the component,
// Conflicts degrade it.
type Component struct {
	Type               ComponentType
	EffectivenessScore float64
	Synergies          []ComponentType
	Conflicts          []ComponentType
}

// Registry is the component catalogue. The default registry is the compiled-in
// game data; callers pass it explicitly so tests can substitute their own.
type Registry map[ComponentType]Component

func DefaultRegistry() Registry {
	components := []Component{
		{Type: CentralizedPower, EffectivenessScore: 70, Synergies: []ComponentType{AutocraticProcess, PartyControl}, Conflicts: []ComponentType{FederalSystem, ConfederateSystem}},
		{Type: FederalSystem, EffectivenessScore: 75, Synergies: []ComponentType{DemocraticProcess, IndependentJudiciary}, Conflicts: []ComponentType{CentralizedPower, AutocraticProcess}},
		{Type: ConfederateSystem, EffectivenessScore: 60, Synergies: []ComponentType{ConsensusProcess}, Conflicts: []ComponentType{CentralizedPower, PartyControl}},
		{Type: UnitaryState, EffectivenessScore: 72, Synergies: []ComponentType{ProfessionalBureaucracy, CentralBank}, Conflicts: []ComponentType{ConfederateSystem}},

		{Type: AutocraticProcess, EffectivenessScore: 65, Synergies: []ComponentType{CentralizedPower, SurveillanceSystem}, Conflicts: []ComponentType{ElectoralLegitimacy, FreePress}},
		{Type: DemocraticProcess, EffectivenessScore: 78, Synergies: []ComponentType{ElectoralLegitimacy, FreePress}, Conflicts: []ComponentType{AutocraticProcess, SurveillanceSystem}},
		{Type: TechnocraticProcess, EffectivenessScore: 82, Synergies: []ComponentType{ProfessionalBureaucracy, PerformanceLegitimacy}, Conflicts: []ComponentType{CharismaticLegitimacy}},
		{Type: ConsensusProcess, EffectivenessScore: 68, Synergies: []ComponentType{ConfederateSystem, TraditionalLegitimacy}, Conflicts: []ComponentType{AutocraticProcess}},

		{Type: ElectoralLegitimacy, EffectivenessScore: 76, Synergies: []ComponentType{DemocraticProcess, RuleOfLaw}, Conflicts: []ComponentType{AutocraticProcess, MilitaryAdministration}},
		{Type: TraditionalLegitimacy, EffectivenessScore: 64, Synergies: []ComponentType{ConsensusProcess}, Conflicts: []ComponentType{TechnocraticProcess}},
		{Type: PerformanceLegitimacy, EffectivenessScore: 80, Synergies: []ComponentType{TechnocraticProcess, ProfessionalBureaucracy}, Conflicts: []ComponentType{PartyControl}},
		{Type: CharismaticLegitimacy, EffectivenessScore: 58, Synergies: []ComponentType{AutocraticProcess}, Conflicts: []ComponentType{TechnocraticProcess, IndependentJudiciary}},

		{Type: ProfessionalBureaucracy, EffectivenessScore: 85, Synergies: []ComponentType{TechnocraticProcess, RuleOfLaw}, Conflicts: []ComponentType{MilitaryAdministration}},
		{Type: IndependentJudiciary, EffectivenessScore: 83, Synergies: []ComponentType{RuleOfLaw, FederalSystem}, Conflicts: []ComponentType{PartyControl, SurveillanceSystem}},
		{Type: CentralBank, EffectivenessScore: 81, Synergies: []ComponentType{UnitaryState, FreeMarket}, Conflicts: []ComponentType{StateLedDevelopment}},
		{Type: MilitaryAdministration, EffectivenessScore: 62, Synergies: []ComponentType{AutocraticProcess, SurveillanceSystem}, Conflicts: []ComponentType{ProfessionalBureaucracy, ElectoralLegitimacy}},

		{Type: RuleOfLaw, EffectivenessScore: 84, Synergies: []ComponentType{IndependentJudiciary, ElectoralLegitimacy}, Conflicts: []ComponentType{PartyControl}},
		{Type: SurveillanceSystem, EffectivenessScore: 66, Synergies: []ComponentType{AutocraticProcess, PartyControl}, Conflicts: []ComponentType{DemocraticProcess, FreePress}},
		{Type: FreePress, EffectivenessScore: 74, Synergies: []ComponentType{DemocraticProcess, ElectoralLegitimacy}, Conflicts: []ComponentType{SurveillanceSystem, PartyControl}},
		{Type: PartyControl, EffectivenessScore: 60, Synergies: []ComponentType{CentralizedPower, SurveillanceSystem}, Conflicts: []ComponentType{RuleOfLaw, FreePress, IndependentJudiciary}},

		{Type: InnovationEconomy, EffectivenessScore: 82, Synergies: []ComponentType{FreeMarket, TechnocraticProcess}, Conflicts: []ComponentType{StateLedDevelopment}},
		{Type: ExportOriented, EffectivenessScore: 77, Synergies: []ComponentType{FreeMarket, CentralBank}, Conflicts: []ComponentType{ConsumptionTax}},
		{Type: StateLedDevelopment, EffectivenessScore: 70, Synergies: []ComponentType{CentralizedPower, ProgressiveTaxation}, Conflicts: []ComponentType{FreeMarket, InnovationEconomy}},
		{Type: FreeMarket, EffectivenessScore: 79, Synergies: []ComponentType{InnovationEconomy, FlatTaxation}, Conflicts: []ComponentType{StateLedDevelopment}},
		{Type: MixedEconomy, EffectivenessScore: 73, Synergies: []ComponentType{ProgressiveTaxation, CentralBank}, Conflicts: nil},

		{Type: ProgressiveTaxation, EffectivenessScore: 75, Synergies: []ComponentType{MixedEconomy, StateLedDevelopment}, Conflicts: []ComponentType{FlatTaxation}},
		{Type: FlatTaxation, EffectivenessScore: 68, Synergies: []ComponentType{FreeMarket}, Conflicts: []ComponentType{ProgressiveTaxation}},
		{Type: ConsumptionTax, EffectivenessScore: 66, Synergies: []ComponentType{MixedEconomy}, Conflicts: []ComponentType{ExportOriented}},
	}

	reg := make(Registry, len(components))
	for _, c := range components {
		reg[c.Type] = c
	}
	return reg
}

// Lookup returns the catalogue entry for a component type.
func (r Registry) Lookup(t ComponentType) (Component, bool) {
	c, ok := r[t]
	return c, ok
}

// CategoryComponents returns the component types belonging to a scored category.
func CategoryComponents(c Category) []ComponentType {
	return categoryComponents[c]
}

// DisplayName formats a component type for presentation: underscores become
// spaces and each word is title-cased. Formatting never affects scoring.
func DisplayName(t ComponentType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CategoryLabel formats a category name the same way component names are
// formatted.
func CategoryLabel(c Category) string {
	return DisplayName(ComponentType(c))
}
