package policy

import (
	"sort"

	"github.com/ixstats/engine/ixstats/atomic"
)

// Generator emits rule-based policy suggestions from a context snapshot.
// Rules are deliberately simple predicates; there is no learned model here.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(ctx *Context) []Recommendation {
	var recs []Recommendation

	if ctx.Economy != nil {
		if hasComponent(ctx.Economy.SelectedComponents, atomic.InnovationEconomy) {
			recs = append(recs, Recommendation{
				Title:              "R&D Tax Credit",
				Description:        "Your innovation economy would benefit from research and development tax incentives",
				Priority:           PriorityHigh,
				Category:           "economic",
				EstimatedCost:      50000,
				SuccessProbability: 0.80,
			})
		}
		if ctx.Economy.UnemploymentRate > 5 {
			recs = append(recs, Recommendation{
				Title:              "Job Training Program",
				Description:        "Unemployment is elevated; workforce retraining would absorb surplus labor",
				Priority:           PriorityHigh,
				Category:           "economic",
				EstimatedCost:      75000,
				SuccessProbability: 0.75,
			})
		}
	}

	if ctx.Government != nil && ctx.Government.Effectiveness < 70 {
		recs = append(recs, Recommendation{
			Title:              "Government Efficiency Reform",
			Description:        "Administrative effectiveness is below target; streamline department processes",
			Priority:           PriorityMedium,
			Category:           "governance",
			EstimatedCost:      100000,
			SuccessProbability: 0.70,
		})
	}

	if ctx.Tax != nil && ctx.Tax.ComplianceRate < 80 {
		recs = append(recs, Recommendation{
			Title:              "Tax Compliance Program",
			Description:        "Compliance is lagging; enforcement and taxpayer education would lift revenue",
			Priority:           PriorityMedium,
			Category:           "tax",
			EstimatedCost:      40000,
			SuccessProbability: 0.65,
		})
	}

	if len(ctx.Cross.Conflicts) > 0 {
		recs = append(recs, Recommendation{
			Title:              "Cross-System Alignment",
			Description:        "Conflicting components across builders are dragging unified effectiveness down",
			Priority:           PriorityCritical,
			Category:           "governance",
			EstimatedCost:      120000,
			SuccessProbability: 0.90,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := priorityRank(recs[i].Priority), priorityRank(recs[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return recs[i].SuccessProbability > recs[j].SuccessProbability
	})

	return recs
}

func hasComponent(selected []atomic.SelectedComponent, t atomic.ComponentType) bool {
	for _, sc := range selected {
		if sc.Type == t {
			return true
		}
	}
	return false
}
