package testutil

import (
	"context"

	"github.com/wanderlands/backend/internal/entity"
	"github.com/wanderlands/backend/pkg/xcontext"
)

var (
	User1 = entity.User{
		Base:     entity.Base{ID: "user1"},
		Username: "alice",
		IsAdmin:  true,
	}

	User2 = entity.User{
		Base:     entity.Base{ID: "user2"},
		Username: "bob",
	}

	User1Inventory = []entity.InventoryItem{
		{Username: "alice", ItemID: "sword", Amount: 1},
		{Username: "alice", ItemID: "potion", Amount: 3},
	}
)

// CreateFixtureDb seeds the database of ctx with the well-known users
// and alice's inventory.
func CreateFixtureDb(ctx context.Context) {
	db := xcontext.DB(ctx)

	users := []entity.User{User1, User2}
	if err := db.Create(&users).Error; err != nil {
		panic(err)
	}

	items := append([]entity.InventoryItem(nil), User1Inventory...)
	if err := db.Create(&items).Error; err != nil {
		panic(err)
	}
}
