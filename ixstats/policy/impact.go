package policy

import "math"

// ImpactCoefficients parameterize the projection model. Several are flat
// per-policy deltas in the current ruleset; they are configuration, not
// invariants, and can be tuned from the config file.
type ImpactCoefficients struct {
	BaseImpactCritical float64 `toml:"base_impact_critical"`
	BaseImpactHigh     float64 `toml:"base_impact_high"`
	BaseImpactDefault  float64 `toml:"base_impact_default"`

	EmploymentPerWorkforce float64 `toml:"employment_per_workforce"`
	InflationPerImpact     float64 `toml:"inflation_per_impact"`
	AgricultureWeight      float64 `toml:"agriculture_weight"`
	IndustryWeight         float64 `toml:"industry_weight"`
	ServicesWeight         float64 `toml:"services_weight"`

	GovernmentEfficiencyChange float64 `toml:"government_efficiency_change"`
	GovernmentCapacityChange   float64 `toml:"government_capacity_change"`
	ServiceQualityChange       float64 `toml:"service_quality_change"`

	TaxRevenueCostRate     float64 `toml:"tax_revenue_cost_rate"`
	TaxCollectionChange    float64 `toml:"tax_collection_change"`
	TaxComplianceChange    float64 `toml:"tax_compliance_change"`
	AdministrativeCostRate float64 `toml:"administrative_cost_rate"`

	InequalityChange   float64 `toml:"inequality_change"`
	PovertyChange      float64 `toml:"poverty_change"`
	WellbeingChange    float64 `toml:"wellbeing_change"`
	EducationChange    float64 `toml:"education_change"`
	HealthcareChange   float64 `toml:"healthcare_change"`
	SatisfactionChange float64 `toml:"satisfaction_change"`
}

func DefaultImpactCoefficients() ImpactCoefficients {
	return ImpactCoefficients{
		BaseImpactCritical: 5,
		BaseImpactHigh:     3,
		BaseImpactDefault:  1,

		EmploymentPerWorkforce: 0.001,
		InflationPerImpact:     0.2,
		AgricultureWeight:      0.8,
		IndustryWeight:         1.2,
		ServicesWeight:         1.0,

		GovernmentEfficiencyChange: 2.5,
		GovernmentCapacityChange:   3.0,
		ServiceQualityChange:       4.0,

		TaxRevenueCostRate:     0.1,
		TaxCollectionChange:    0.5,
		TaxComplianceChange:    0.3,
		AdministrativeCostRate: 0.05,

		InequalityChange:   -0.5,
		PovertyChange:      -1.0,
		WellbeingChange:    2.0,
		EducationChange:    1.5,
		HealthcareChange:   1.5,
		SatisfactionChange: 5.0,
	}
}

type EconomicImpact struct {
	GDPChange         float64 `json:"gdpChange"`
	EmploymentChange  float64 `json:"employmentChange"`
	InflationChange   float64 `json:"inflationChange"`
	AgricultureImpact float64 `json:"agricultureImpact"`
	IndustryImpact    float64 `json:"industryImpact"`
	ServicesImpact    float64 `json:"servicesImpact"`
}

type GovernmentImpact struct {
	BudgetChange         float64 `json:"budgetChange"`
	EfficiencyChange     float64 `json:"efficiencyChange"`
	CapacityChange       float64 `json:"capacityChange"`
	ServiceQualityChange float64 `json:"serviceQualityChange"`
}

type TaxImpact struct {
	RevenueChange             float64 `json:"revenueChange"`
	CollectionEfficiencyChange float64 `json:"collectionEfficiencyChange"`
	ComplianceChange          float64 `json:"complianceChange"`
	AdministrativeCostChange  float64 `json:"administrativeCostChange"`
}

type SocialImpact struct {
	InequalityChange   float64 `json:"inequalityChange"`
	PovertyChange      float64 `json:"povertyChange"`
	WellbeingChange    float64 `json:"wellbeingChange"`
	EducationChange    float64 `json:"educationChange"`
	HealthcareChange   float64 `json:"healthcareChange"`
	SatisfactionChange float64 `json:"satisfactionChange"`
}

type OverallImpact struct {
	EffectivenessChange   float64 `json:"effectivenessChange"`
	StabilityChange       float64 `json:"stabilityChange"`
	GrowthChange          float64 `json:"growthChange"`
	CompetitivenessChange float64 `json:"competitivenessChange"`
	RiskLevel             string  `json:"riskLevel"`
	Confidence            float64 `json:"confidence"`
}

// TimelinePhase holds the full-impact numbers scaled by the phase's effect
// fraction, plus the share of implementation cost paid in that phase.
type TimelinePhase struct {
	Phase          string           `json:"phase"`
	EffectFraction float64          `json:"effectFraction"`
	CostFraction   float64          `json:"costFraction"`
	Cost           float64          `json:"cost"`
	Economic       EconomicImpact   `json:"economic"`
	Government     GovernmentImpact `json:"government"`
	Tax            TaxImpact        `json:"tax"`
	Social         SocialImpact     `json:"social"`
}

type ImpactTimeline struct {
	Immediate  TimelinePhase `json:"immediate"`
	ShortTerm  TimelinePhase `json:"shortTerm"`
	MediumTerm TimelinePhase `json:"mediumTerm"`
	LongTerm   TimelinePhase `json:"longTerm"`
}

type PolicyImpact struct {
	Economic   EconomicImpact   `json:"economic"`
	Government GovernmentImpact `json:"government"`
	Tax        TaxImpact        `json:"tax"`
	Social     SocialImpact     `json:"social"`
	Overall    OverallImpact    `json:"overall"`
	Timeline   ImpactTimeline   `json:"timeline"`
}

// Timeline phase fractions. The cost fractions must sum to 1.0: the full
// implementation cost is paid exactly once across the four phases.
var timelinePhases = []struct {
	name           string
	effectFraction float64
	costFraction   float64
}{
	{"immediate", 0.1, 0.4},
	{"shortTerm", 0.4, 0.4},
	{"mediumTerm", 0.8, 0.15},
	{"longTerm", 1.0, 0.05},
}

// ImpactCalculator projects a validated policy's effects across the four
// dimensions and expands them into the phase timeline.
type ImpactCalculator struct {
	coeff ImpactCoefficients
}

func NewImpactCalculator(coeff ImpactCoefficients) *ImpactCalculator {
	return &ImpactCalculator{coeff: coeff}
}

func (c *ImpactCalculator) baseImpact(p Policy) float64 {
	switch p.Priority {
	case PriorityCritical:
		return c.coeff.BaseImpactCritical
	case PriorityHigh:
		return c.coeff.BaseImpactHigh
	default:
		return c.coeff.BaseImpactDefault
	}
}

func (c *ImpactCalculator) Calculate(p Policy, ctx *Context) PolicyImpact {
	base := c.baseImpact(p)

	var economyEffectiveness float64
	var workforce float64
	if ctx.Economy != nil {
		economyEffectiveness = ctx.Economy.Effectiveness
		workforce = float64(ctx.Economy.TotalWorkforce)
	}

	economic := EconomicImpact{
		GDPChange:         base * (economyEffectiveness / 100),
		EmploymentChange:  math.Round(base * workforce * c.coeff.EmploymentPerWorkforce),
		InflationChange:   base * c.coeff.InflationPerImpact,
		AgricultureImpact: base * c.coeff.AgricultureWeight,
		IndustryImpact:    base * c.coeff.IndustryWeight,
		ServicesImpact:    base * c.coeff.ServicesWeight,
	}

	government := GovernmentImpact{
		BudgetChange:         -p.ImplementationCost,
		EfficiencyChange:     c.coeff.GovernmentEfficiencyChange,
		CapacityChange:       c.coeff.GovernmentCapacityChange,
		ServiceQualityChange: c.coeff.ServiceQualityChange,
	}

	tax := TaxImpact{
		RevenueChange:              -c.coeff.TaxRevenueCostRate * p.ImplementationCost,
		CollectionEfficiencyChange: c.coeff.TaxCollectionChange,
		ComplianceChange:           c.coeff.TaxComplianceChange,
		AdministrativeCostChange:   c.coeff.AdministrativeCostRate * p.ImplementationCost,
	}

	social := SocialImpact{
		InequalityChange:   c.coeff.InequalityChange,
		PovertyChange:      c.coeff.PovertyChange,
		WellbeingChange:    c.coeff.WellbeingChange,
		EducationChange:    c.coeff.EducationChange,
		HealthcareChange:   c.coeff.HealthcareChange,
		SatisfactionChange: c.coeff.SatisfactionChange,
	}

	overall := OverallImpact{
		EffectivenessChange:   base,
		StabilityChange:       social.WellbeingChange/2 - float64(len(ctx.Cross.Conflicts)),
		GrowthChange:          economic.GDPChange,
		CompetitivenessChange: base * (economyEffectiveness / 100),
		RiskLevel:             riskLevel(len(ctx.Cross.Conflicts)),
		Confidence:            ctx.Cross.OverallScore,
	}

	return PolicyImpact{
		Economic:   economic,
		Government: government,
		Tax:        tax,
		Social:     social,
		Overall:    overall,
		Timeline:   c.buildTimeline(p, economic, government, tax, social),
	}
}

func riskLevel(conflicts int) string {
	switch {
	case conflicts > 2:
		return "high"
	case conflicts >= 1:
		return "medium"
	default:
		return "low"
	}
}

func (c *ImpactCalculator) buildTimeline(p Policy, economic EconomicImpact, government GovernmentImpact, tax TaxImpact, social SocialImpact) ImpactTimeline {
	phases := make([]TimelinePhase, len(timelinePhases))
	for i, def := range timelinePhases {
		phases[i] = TimelinePhase{
			Phase:          def.name,
			EffectFraction: def.effectFraction,
			CostFraction:   def.costFraction,
			Cost:           p.ImplementationCost * def.costFraction,
			Economic:       scaleEconomic(economic, def.effectFraction),
			Government:     scaleGovernment(government, def.effectFraction),
			Tax:            scaleTax(tax, def.effectFraction),
			Social:         scaleSocial(social, def.effectFraction),
		}
	}

	return ImpactTimeline{
		Immediate:  phases[0],
		ShortTerm:  phases[1],
		MediumTerm: phases[2],
		LongTerm:   phases[3],
	}
}

func scaleEconomic(e EconomicImpact, f float64) EconomicImpact {
	return EconomicImpact{
		GDPChange:         e.GDPChange * f,
		EmploymentChange:  e.EmploymentChange * f,
		InflationChange:   e.InflationChange * f,
		AgricultureImpact: e.AgricultureImpact * f,
		IndustryImpact:    e.IndustryImpact * f,
		ServicesImpact:    e.ServicesImpact * f,
	}
}

func scaleGovernment(g GovernmentImpact, f float64) GovernmentImpact {
	return GovernmentImpact{
		BudgetChange:         g.BudgetChange * f,
		EfficiencyChange:     g.EfficiencyChange * f,
		CapacityChange:       g.CapacityChange * f,
		ServiceQualityChange: g.ServiceQualityChange * f,
	}
}

func scaleTax(t TaxImpact, f float64) TaxImpact {
	return TaxImpact{
		RevenueChange:              t.RevenueChange * f,
		CollectionEfficiencyChange: t.CollectionEfficiencyChange * f,
		ComplianceChange:           t.ComplianceChange * f,
		AdministrativeCostChange:   t.AdministrativeCostChange * f,
	}
}

func scaleSocial(s SocialImpact, f float64) SocialImpact {
	return SocialImpact{
		InequalityChange:   s.InequalityChange * f,
		PovertyChange:      s.PovertyChange * f,
		WellbeingChange:    s.WellbeingChange * f,
		EducationChange:    s.EducationChange * f,
		HealthcareChange:   s.HealthcareChange * f,
		SatisfactionChange: s.SatisfactionChange * f,
	}
}
