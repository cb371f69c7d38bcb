package models

import (
	"gorm.io/gorm"
)

// Product is a finished good produced from one active recipe.
type Product struct {
	gorm.Model
	Code    string          `gorm:"uniqueIndex;not null" json:"code"`
	Name    string          `gorm:"not null" json:"name"`
	Recipes []ProductRecipe `gorm:"foreignKey:ProductID" json:"recipes,omitempty"`
}
