package model

import "gorm.io/gorm"

// all lists every table in dependency order.
func all() []interface{} {
	return []interface{}{
		&User{},
		&Restaurant{},
		&UserRestaurant{},
		&Category{},
		&MenuItem{},
	}
}

// AutoMigrate creates or updates the schema of every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(all()...)
}

// DropAll removes every table, children first.
func DropAll(db *gorm.DB) error {
	tables := all()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return err
		}
	}
	return nil
}
