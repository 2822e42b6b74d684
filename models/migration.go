package models

import (
	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Brand{}, &Category{}, &Color{}, &Series{},
		&Product{}, &ProductSeriesMap{},
		&DealerProduct{},
		&InventoryRecord{},
	)
}
