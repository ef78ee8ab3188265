package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CardInstance is a single owned copy of a collectible card. Instances are
// what actually trade on the auction market.
type CardInstance struct {
	bun.BaseModel `bun:"table:card_instances,alias:ci"`

	ID      int64  `bun:"id,pk,autoincrement"`
	CardID  int64  `bun:"card_id,notnull"`
	OwnerID string `bun:"owner_id,notnull"`
	Name    string `bun:"name,notnull"`
	Rarity  string `bun:"rarity,notnull"`
	Listed  bool   `bun:"listed,notnull,default:false"`

	ObtainedAt time.Time `bun:"obtained_at,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
