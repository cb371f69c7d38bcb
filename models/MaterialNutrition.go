package models

import (
	"gorm.io/gorm"
)

// MaterialNutrition holds label nutrition facts for a material, expressed per 100 g.
// Every nutrient column is nullable; a NULL means the supplier did not report it.
type MaterialNutrition struct {
	gorm.Model
	MaterialID uint `gorm:"uniqueIndex;not null" json:"material_id"`

	Calories            *float64 `json:"calories"`
	TotalFatG           *float64 `json:"total_fat_g"`
	SaturatedFatG       *float64 `json:"saturated_fat_g"`
	TransFatG           *float64 `json:"trans_fat_g"`
	PolyunsaturatedFatG *float64 `json:"polyunsaturated_fat_g"`
	MonounsaturatedFatG *float64 `json:"monounsaturated_fat_g"`
	CholesterolMg       *float64 `json:"cholesterol_mg"`
	SodiumMg            *float64 `json:"sodium_mg"`
	TotalCarbohydrateG  *float64 `json:"total_carbohydrate_g"`
	DietaryFiberG       *float64 `json:"dietary_fiber_g"`
	TotalSugarsG        *float64 `json:"total_sugars_g"`
	AddedSugarsG        *float64 `json:"added_sugars_g"`
	ProteinG            *float64 `json:"protein_g"`
	VitaminDMcg         *float64 `json:"vitamin_d_mcg"`
	CalciumMg           *float64 `json:"calcium_mg"`
	IronMg              *float64 `json:"iron_mg"`
	PotassiumMg         *float64 `json:"potassium_mg"`
	VitaminAMcg         *float64 `json:"vitamin_a_mcg"`
	VitaminCMg          *float64 `json:"vitamin_c_mg"`

	Source string `gorm:"type:text" json:"source"`
}

func (MaterialNutrition) TableName() string {
	return "material_nutrition"
}
