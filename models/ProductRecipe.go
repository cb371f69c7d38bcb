package models

import (
	"gorm.io/gorm"
)

type ProductRecipe struct {
	gorm.Model
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	Name        string  `json:"name"`
	BatchSize   float64 `gorm:"not null;default:0" json:"batch_size"`
	BatchUnitID *uint   `json:"batch_unit_id"`
	// At most one recipe per product is active; the application maintains this.
	IsActive bool                `gorm:"not null;default:false;index" json:"is_active"`
	Items    []ProductRecipeItem `gorm:"foreignKey:RecipeID" json:"items"`
}
