package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// User maps the usuarios table
type User struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	Nombre          string          `gorm:"column:nombre;type:varchar(100);not null"`
	Apellido        null.String     `gorm:"column:apellido;type:varchar(100)"`
	Email           string          `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Contrasena      string          `gorm:"column:contrasena;type:varchar(255);not null"`
	FechaNacimiento null.String     `gorm:"column:fecha_nacimiento;type:varchar(10)"`
	Monto           decimal.Decimal `gorm:"column:monto;type:decimal(12,2);not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
}

func (User) TableName() string {
	return "usuarios"
}
