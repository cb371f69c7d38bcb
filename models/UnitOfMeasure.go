package models

import (
	"gorm.io/gorm"
)

// UnitOfMeasure is a unit a recipe quantity may be expressed in. Codes are
// matched case-insensitively by the nutrition engine.
type UnitOfMeasure struct {
	gorm.Model
	Code string `gorm:"uniqueIndex;not null" json:"code"`
	Name string `json:"name"`
}

func (UnitOfMeasure) TableName() string {
	return "units_of_measure"
}
