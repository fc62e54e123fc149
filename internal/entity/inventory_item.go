package entity

import "time"

// InventoryItem is one stack of a player's persisted progress. Rows are
// keyed by (username, item) and replaced wholesale on save.
type InventoryItem struct {
	Username  string `gorm:"primaryKey"`
	ItemID    string `gorm:"primaryKey"`
	Amount    int
	UpdatedAt time.Time
}
