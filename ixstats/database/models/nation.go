package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Nation is a player-controlled country. Balance is the liquid currency used
// on the card market; GovernmentBudget is the fiscal budget policies draw on.
type Nation struct {
	bun.BaseModel `bun:"table:nations,alias:n"`

	ID       int64  `bun:"id,pk,autoincrement"`
	NationID string `bun:"nation_id,notnull,unique"`
	Name     string `bun:"name,notnull"`
	LeaderID string `bun:"leader_id,notnull"`

	Balance          int64   `bun:"balance,notnull,default:0"`
	GovernmentBudget float64 `bun:"government_budget,notnull,default:0"`

	// Economy snapshot refreshed by the importer / external simulation tick
	GDP              float64 `bun:"gdp,notnull,default:0"`
	GDPGrowthRate    float64 `bun:"gdp_growth_rate,notnull,default:0"`
	InflationRate    float64 `bun:"inflation_rate,notnull,default:0"`
	TotalWorkforce   int64   `bun:"total_workforce,notnull,default:0"`
	UnemploymentRate float64 `bun:"unemployment_rate,notnull,default:0"`

	// Selected atomic components stored as JSONB arrays of component type tags
	EconomyComponents    []string `bun:"economy_components,type:jsonb"`
	GovernmentComponents []string `bun:"government_components,type:jsonb"`

	TaxCollectionEfficiency float64 `bun:"tax_collection_efficiency,notnull,default:0"`
	TaxComplianceRate       float64 `bun:"tax_compliance_rate,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Embassy records a bilateral relationship between two nations. Strength is
// 0-100 and feeds the atomic synergy match score.
type Embassy struct {
	bun.BaseModel `bun:"table:embassies,alias:e"`

	ID            int64     `bun:"id,pk,autoincrement"`
	NationID      string    `bun:"nation_id,notnull"`
	HostNationID  string    `bun:"host_nation_id,notnull"`
	Strength      float64   `bun:"strength,notnull,default:0"`
	EstablishedAt time.Time `bun:"established_at,notnull"`
}
