package models

import (
	"gorm.io/gorm"
)

type ProductRecipeItem struct {
	gorm.Model
	RecipeID         uint    `gorm:"not null;index" json:"recipe_id"` // Parent ProductRecipe
	SortOrder        int     `gorm:"not null;default:0" json:"sort_order"`
	MaterialID       uint    `gorm:"not null;index" json:"material_id"`
	QuantityRequired float64 `gorm:"not null" json:"quantity_required"`
	UnitID           *uint   `json:"unit_id"`

	// --- Preloadable Data ---
	Material *Material      `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Unit     *UnitOfMeasure `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
