package entity

import (
	"context"

	"github.com/wanderlands/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&InventoryItem{},
	)
}
