package policy

import (
	"time"

	"github.com/ixstats/engine/ixstats/atomic"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// priorityRank orders priorities for sorting, highest first.
func priorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

type PolicyType string

const (
	PolicyTypeEconomic   PolicyType = "economic"
	PolicyTypeGovernance PolicyType = "governance"
	PolicyTypeTax        PolicyType = "tax"
	PolicyTypeSocial     PolicyType = "social"
)

// EconomicEffects are the deltas a policy declares against the economy
// subsystem. Zero-valued fields are not applied.
type EconomicEffects struct {
	GDPGrowthRate    float64 `json:"gdpGrowthRate"`
	InflationRate    float64 `json:"inflationRate"`
	UnemploymentRate float64 `json:"unemploymentRate"`
}

type GovernmentEffects struct {
	Efficiency       float64 `json:"efficiency"`
	BudgetAllocation float64 `json:"budgetAllocation"`
}

type TaxEffects struct {
	CollectionEfficiency float64 `json:"collectionEfficiency"`
	ComplianceRate       float64 `json:"complianceRate"`
}

// Policy is a proposed measure authored against the builder context.
type Policy struct {
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	PolicyType         PolicyType `json:"policyType"`
	Category           string     `json:"category"`
	Priority           Priority   `json:"priority"`
	ImplementationCost float64    `json:"implementationCost"`
	RequiredComponents []string   `json:"requiredComponents"`

	EconomicEffects   *EconomicEffects   `json:"economicEffects,omitempty"`
	GovernmentEffects *GovernmentEffects `json:"governmentEffects,omitempty"`
	TaxEffects        *TaxEffects        `json:"taxEffects,omitempty"`
}

// EconomyContext is the normalized economy snapshot. Every field is populated
// by the extractor; downstream scoring never null-checks.
type EconomyContext struct {
	SelectedComponents []atomic.SelectedComponent `json:"selectedComponents"`
	GDP                float64                    `json:"gdp"`
	GDPGrowthRate      float64                    `json:"gdpGrowthRate"`
	InflationRate      float64                    `json:"inflationRate"`
	TotalWorkforce     int64                      `json:"totalWorkforce"`
	UnemploymentRate   float64                    `json:"unemploymentRate"`
	Effectiveness      float64                    `json:"effectiveness"`
}

type GovernmentContext struct {
	SelectedComponents []atomic.SelectedComponent `json:"selectedComponents"`
	TotalBudget        float64                    `json:"totalBudget"`
	Effectiveness      float64                    `json:"effectiveness"`
}

type TaxContext struct {
	CollectionEfficiency float64  `json:"collectionEfficiency"`
	ComplianceRate       float64  `json:"complianceRate"`
	Effectiveness        float64  `json:"effectiveness"`
	Recommendations      []string `json:"recommendations"`
}

// CrossBuilderContext is the combined economy/government/tax interaction
// result supplied by the cross-builder analyzer.
type CrossBuilderContext struct {
	Synergies            []string `json:"synergies"`
	Conflicts            []string `json:"conflicts"`
	OverallScore         float64  `json:"overallScore"`
	UnifiedEffectiveness float64  `json:"unifiedEffectiveness"`
}

// Context is the immutable per-session snapshot policies are authored
// against. Government and Tax stay nil when the nation has not configured
// those subsystems.
type Context struct {
	Economy    *EconomyContext     `json:"economy"`
	Government *GovernmentContext  `json:"government"`
	Tax        *TaxContext         `json:"tax"`
	Cross      CrossBuilderContext `json:"crossBuilder"`
	Timestamp  time.Time           `json:"timestamp"`
}

// ValidationResult carries everything the UI needs to explain why a policy
// can or cannot be applied. Recommendations never block validity.
type ValidationResult struct {
	Valid                 bool     `json:"valid"`
	Errors                []string `json:"errors"`
	Warnings              []string `json:"warnings"`
	Recommendations       []string `json:"recommendations"`
	CompatibilityScore    float64  `json:"compatibilityScore"`
	ExpectedEffectiveness float64  `json:"expectedEffectiveness"`
}

// PolicyChange records one applied field delta.
type PolicyChange struct {
	System      string  `json:"system"`
	Field       string  `json:"field"`
	OldValue    float64 `json:"oldValue"`
	NewValue    float64 `json:"newValue"`
	Description string  `json:"description"`
}

// ApplyResult reports an atomic policy application: either every declared
// effect is recorded as a change, or none are and Error is set.
type ApplyResult struct {
	Success              bool           `json:"success"`
	Changes              []PolicyChange `json:"changes"`
	UnifiedEffectiveness float64        `json:"unifiedEffectiveness"`
	Error                string         `json:"error,omitempty"`
}

// Recommendation is a ranked rule-based policy suggestion.
type Recommendation struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Priority           Priority `json:"priority"`
	Category           string   `json:"category"`
	EstimatedCost      float64  `json:"estimatedCost"`
	SuccessProbability float64  `json:"successProbability"`
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
