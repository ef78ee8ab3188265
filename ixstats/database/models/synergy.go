package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ComponentSynergy is a live synergy row maintained by game admins. When the
// table is empty the engine falls back to the static component registry.
type ComponentSynergy struct {
	bun.BaseModel `bun:"table:component_synergies,alias:cs"`

	ID           int64   `bun:"id,pk,autoincrement"`
	ComponentA   string  `bun:"component_a,notnull"`
	ComponentB   string  `bun:"component_b,notnull"`
	SynergyType  string  `bun:"synergy_type,notnull"`
	BonusPercent float64 `bun:"bonus_percent,notnull"`
	Description  string  `bun:"description"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
