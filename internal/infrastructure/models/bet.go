package models

import "time"

// BetTop3 maps the apuestas_top3 table
type BetTop3 struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	UserID       int64     `gorm:"column:user_id;not null;index:idx_apuestas_top3_user_created,priority:1"`
	Top1DriverID int64     `gorm:"column:top1_driver_id;not null"`
	Top2DriverID int64     `gorm:"column:top2_driver_id;not null"`
	Top3DriverID int64     `gorm:"column:top3_driver_id;not null"`
	Status       string    `gorm:"column:status;type:varchar(20);not null;default:'pendiente'"`
	CreatedAt    time.Time `gorm:"column:created_at;index:idx_apuestas_top3_user_created,priority:2"`

	User       *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Top1Driver *Driver `gorm:"foreignKey:Top1DriverID"`
	Top2Driver *Driver `gorm:"foreignKey:Top2DriverID"`
	Top3Driver *Driver `gorm:"foreignKey:Top3DriverID"`
}

func (BetTop3) TableName() string {
	return "apuestas_top3"
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{&User{}, &Driver{}, &BetTop3{}}
}
