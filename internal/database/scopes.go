package database

import (
	"gorm.io/gorm"
)

// WhereEq filters on column = value when value is non-empty.
func WhereEq(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// OrderBy applies the columns in sequence. Callers end on the primary key so
// ties come back in a stable order.
func OrderBy(columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, col := range columns {
			db = db.Order(col)
		}
		return db
	}
}
