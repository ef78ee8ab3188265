package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// PolicyRecord is an applied policy. Changes holds the serialized list of
// field-level deltas produced by the apply step.
type PolicyRecord struct {
	bun.BaseModel `bun:"table:policy_records,alias:pr"`

	ID       int64  `bun:"id,pk,autoincrement"`
	NationID string `bun:"nation_id,notnull"`

	Name               string  `bun:"name,notnull"`
	PolicyType         string  `bun:"policy_type,notnull"`
	Category           string  `bun:"category,notnull"`
	Priority           string  `bun:"priority,notnull"`
	ImplementationCost float64 `bun:"implementation_cost,notnull"`

	Changes json.RawMessage `bun:"changes,type:jsonb"`

	UnifiedEffectiveness float64   `bun:"unified_effectiveness,notnull"`
	AppliedAt            time.Time `bun:"applied_at,notnull"`
	CreatedAt            time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
