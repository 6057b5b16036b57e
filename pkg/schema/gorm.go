package schema

import (
	"slices"

	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
// Offices go first, persons reference them.
func AllModels() []any {
	return []any{
		&Office{},
		&Person{},
	}
}

// DDLModels returns the models in creation order for the sqlx stores.
func DDLModels() []DDLGenerator {
	return []DDLGenerator{
		Office{},
		Person{},
	}
}

// TableNames returns names of persload tables in creation order.
func TableNames() []string {
	models := DDLModels()
	res := make([]string, len(models))
	for i, v := range models {
		res[i] = v.TableName()
	}
	return res
}

// DropOrder returns names of persload tables with dependent tables first.
func DropOrder() []string {
	res := TableNames()
	slices.Reverse(res)
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
