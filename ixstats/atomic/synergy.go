package atomic

import (
	"log/slog"
	"math"
	"sort"
)

type SynergyType string

const (
	SynergyStrong   SynergyType = "STRONG"
	SynergyModerate SynergyType = "MODERATE"
	SynergyWeak     SynergyType = "WEAK"
	SynergyConflict SynergyType = "CONFLICT"
)

// Synergy is a scored relationship between two component types. BonusPercent
// is negative for conflicts. Aggregation treats {A,B} and {B,A} as the same
// relationship.
type Synergy struct {
	ComponentA   ComponentType
	ComponentB   ComponentType
	Type         SynergyType
	BonusPercent float64
	Description  string
}

// SelectedComponent is a component the viewer has active, with its live
// effectiveness score.
type SelectedComponent struct {
	Type               ComponentType
	EffectivenessScore float64
}

// AtomicSynergy is the per-category synergy result against a counterpart
// nation, sized by the bilateral embassy strength.
type AtomicSynergy struct {
	Category          Category `json:"category"`
	CategoryLabel     string   `json:"categoryLabel"`
	Components        []string `json:"components"`
	MatchScore        float64  `json:"matchScore"`
	EconomicBenefit   float64  `json:"economicBenefit"`
	DiplomaticBenefit float64  `json:"diplomaticBenefit"`
	CulturalBenefit   float64  `json:"culturalBenefit"`
}

// Config carries the scoring coefficients. Diplomatic benefit is deliberately
// weighted 1.5x economic and 2x cultural.
type Config struct {
	MatchThreshold   float64 `toml:"match_threshold"`
	EconomicWeight   float64 `toml:"economic_weight"`
	DiplomaticWeight float64 `toml:"diplomatic_weight"`
	CulturalWeight   float64 `toml:"cultural_weight"`
	StrongBonus      float64 `toml:"strong_bonus"`
	ConflictPenalty  float64 `toml:"conflict_penalty"`
}

func DefaultConfig() Config {
	return Config{
		MatchThreshold:   30,
		EconomicWeight:   0.04,
		DiplomaticWeight: 0.06,
		CulturalWeight:   0.03,
		StrongBonus:      15,
		ConflictPenalty:  -20,
	}
}

// Calculator scores component selections. It holds no mutable state; the
// registry and any live synergy rows are passed in explicitly.
type Calculator struct {
	registry Registry
	cfg      Config
}

func NewCalculator(registry Registry, cfg Config) *Calculator {
	return &Calculator{registry: registry, cfg: cfg}
}

// CalculateAtomicSynergies scores the viewer's components against a bilateral
// relationship of the given strength (0-100). Categories with no matching
// components, or a match score at or below the threshold, are omitted rather
// than zeroed.
func (c *Calculator) CalculateAtomicSynergies(mine []SelectedComponent, embassyStrength float64) []AtomicSynergy {
	var results []AtomicSynergy

	for _, category := range Categories {
		members := CategoryComponents(category)
		memberSet := make(map[ComponentType]struct{}, len(members))
		for _, m := range members {
			memberSet[m] = struct{}{}
		}

		var matched []SelectedComponent
		for _, sc := range mine {
			if _, ok := memberSet[sc.Type]; ok {
				matched = append(matched, sc)
			}
		}
		if len(matched) == 0 {
			continue
		}

		var sum float64
		names := make([]string, 0, len(matched))
		for _, sc := range matched {
			sum += sc.EffectivenessScore
			names = append(names, DisplayName(sc.Type))
		}
		avgEffectiveness := sum / float64(len(matched))

		matchScore := math.Min(100, (avgEffectiveness+embassyStrength)/2)
		if matchScore <= c.cfg.MatchThreshold {
			continue
		}

		results = append(results, AtomicSynergy{
			Category:          category,
			CategoryLabel:     CategoryLabel(category),
			Components:        names,
			MatchScore:        matchScore,
			EconomicBenefit:   matchScore * c.cfg.EconomicWeight,
			DiplomaticBenefit: matchScore * c.cfg.DiplomaticWeight,
			CulturalBenefit:   matchScore * c.cfg.CulturalWeight,
		})
	}

	return results
}

// SynergiesFor returns the synergy rows touching componentType. When live rows
// are supplied they are filtered; otherwise the static registry's declared
// synergy and conflict partners are expanded into STRONG/CONFLICT rows so the
// engine keeps working without live data.
func (c *Calculator) SynergiesFor(componentType ComponentType, live []Synergy) []Synergy {
	if len(live) > 0 {
		var filtered []Synergy
		for _, s := range live {
			if s.ComponentA == componentType || s.ComponentB == componentType {
				filtered = append(filtered, s)
			}
		}
		return filtered
	}

	slog.Warn("No live synergy data, falling back to static registry",
		slog.String("type", "policy"),
		slog.String("component", string(componentType)))

	component, ok := c.registry.Lookup(componentType)
	if !ok {
		return nil
	}

	var synergies []Synergy
	for _, partner := range component.Synergies {
		synergies = append(synergies, Synergy{
			ComponentA:   componentType,
			ComponentB:   partner,
			Type:         SynergyStrong,
			BonusPercent: c.cfg.StrongBonus,
		})
	}
	for _, partner := range component.Conflicts {
		synergies = append(synergies, Synergy{
			ComponentA:   componentType,
			ComponentB:   partner,
			Type:         SynergyConflict,
			BonusPercent: c.cfg.ConflictPenalty,
		})
	}
	return synergies
}

// SynergyBonus sums bonus percentages over every synergy whose endpoints are
// both selected. Each unordered pair counts once even when the data carries
// both (A,B) and (B,A).
func (c *Calculator) SynergyBonus(selected []ComponentType, live []Synergy) float64 {
	selectedSet := make(map[ComponentType]struct{}, len(selected))
	for _, t := range selected {
		selectedSet[t] = struct{}{}
	}

	processed := make(map[string]struct{})
	var total float64

	for _, t := range selected {
		for _, s := range c.SynergiesFor(t, live) {
			_, okA := selectedSet[s.ComponentA]
			_, okB := selectedSet[s.ComponentB]
			if !okA || !okB {
				continue
			}

			key := pairKey(s.ComponentA, s.ComponentB)
			if _, done := processed[key]; done {
				continue
			}
			processed[key] = struct{}{}
			total += s.BonusPercent
		}
	}

	return total
}

func pairKey(a, b ComponentType) string {
	pair := []string{string(a), string(b)}
	sort.Strings(pair)
	return pair[0] + "|" + pair[1]
}
