package models

import (
	"gorm.io/gorm"
)

// Material is a raw ingredient or packaging item held in inventory.
type Material struct {
	gorm.Model
	Code                string             `gorm:"uniqueIndex;not null" json:"code"`
	Name                string             `gorm:"not null" json:"name"`
	BaseUnitID          *uint              `json:"base_unit_id"`
	UsageUnitID         *uint              `json:"usage_unit_id"`
	UsageUnitConversion *float64           `json:"usage_unit_conversion"`
	Nutrition           *MaterialNutrition `gorm:"foreignKey:MaterialID" json:"nutrition,omitempty"`
}
