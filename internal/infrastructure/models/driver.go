package models

import "github.com/volatiletech/null/v8"

// Driver maps the drivers table populated by the ETL
type Driver struct {
	ID          int64       `gorm:"primaryKey;autoIncrement"`
	Pos         null.Int    `gorm:"column:pos"`
	Name        string      `gorm:"column:name;not null;uniqueIndex:idx_drivers_name_season"`
	Nationality null.String `gorm:"column:nationality"`
	Team        null.String `gorm:"column:team"`
	Pts         null.Int    `gorm:"column:pts"`
	Season      null.Int    `gorm:"column:season;uniqueIndex:idx_drivers_name_season"`
}

func (Driver) TableName() string {
	return "drivers"
}
