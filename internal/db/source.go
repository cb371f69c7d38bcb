package db

import (
	"context"

	"gorm.io/gorm"

	"nutricalc/internal/nutrition"
	"nutricalc/models"
)

// NutritionSource reads recipe, nutrition and unit records for the nutrition
// calculator.
type NutritionSource struct {
	db *gorm.DB
}

// NewNutritionSource wraps db. A nil db makes every read fail with gorm.ErrInvalidDB.
func NewNutritionSource(db *gorm.DB) *NutritionSource {
	return &NutritionSource{db: db}
}

var _ nutrition.Source = (*NutritionSource)(nil)

func (s *NutritionSource) ActiveRecipe(ctx context.Context, productID uint) (*nutrition.Recipe, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	var recipes []models.ProductRecipe
	if err := s.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("id desc").
		Limit(1).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}

	recipe := recipes[0]
	return &nutrition.Recipe{
		ID:          recipe.ID,
		ProductID:   recipe.ProductID,
		BatchSize:   recipe.BatchSize,
		BatchUnitID: recipe.BatchUnitID,
	}, nil
}

func (s *NutritionSource) RecipeItems(ctx context.Context, recipeID uint) ([]nutrition.RecipeItem, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	var rows []models.ProductRecipeItem
	if err := s.db.WithContext(ctx).
		Preload("Material").
		Where("recipe_id = ?", recipeID).
		Order("sort_order asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]nutrition.RecipeItem, 0, len(rows))
	for _, row := range rows {
		item := nutrition.RecipeItem{
			MaterialID:       row.MaterialID,
			QuantityRequired: row.QuantityRequired,
			UnitID:           row.UnitID,
			Material:         nutrition.Material{ID: row.MaterialID},
		}
		if row.Material != nil {
			item.Material = nutrition.Material{
				ID:                  row.Material.ID,
				Code:                row.Material.Code,
				Name:                row.Material.Name,
				BaseUnitID:          row.Material.BaseUnitID,
				UsageUnitID:         row.Material.UsageUnitID,
				UsageUnitConversion: row.Material.UsageUnitConversion,
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *NutritionSource) NutritionByMaterial(ctx context.Context, materialIDs []uint) (map[uint]nutrition.NutritionRecord, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	records := make(map[uint]nutrition.NutritionRecord, len(materialIDs))
	if len(materialIDs) == 0 {
		return records, nil
	}

	var rows []models.MaterialNutrition
	if err := s.db.WithContext(ctx).
		Where("material_id IN ?", materialIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		records[row.MaterialID] = nutritionRecord(row)
	}
	return records, nil
}

func (s *NutritionSource) Units(ctx context.Context) ([]nutrition.Unit, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	var rows []models.UnitOfMeasure
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	units := make([]nutrition.Unit, 0, len(rows))
	for _, row := range rows {
		units = append(units, nutrition.Unit{ID: row.ID, Code: row.Code, Name: row.Name})
	}
	return units, nil
}

// MaterialsMissingNutrition lists materials used by an active recipe that have no
// nutrition record, ordered by code.
func (s *NutritionSource) MaterialsMissingNutrition(ctx context.Context) ([]models.Material, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	tx := s.db.WithContext(ctx)
	inActiveRecipes := tx.Model(&models.ProductRecipeItem{}).
		Select("product_recipe_items.material_id").
		Joins("JOIN product_recipes ON product_recipes.id = product_recipe_items.recipe_id").
		Where("product_recipes.is_active = ? AND product_recipes.deleted_at IS NULL", true)
	withNutrition := tx.Model(&models.MaterialNutrition{}).Select("material_id")

	var materials []models.Material
	if err := tx.
		Where("id IN (?)", inActiveRecipes).
		Where("id NOT IN (?)", withNutrition).
		Order("code asc").
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func nutritionRecord(row models.MaterialNutrition) nutrition.NutritionRecord {
	return nutrition.NutritionRecord{
		MaterialID:          row.MaterialID,
		Calories:            row.Calories,
		TotalFatG:           row.TotalFatG,
		SaturatedFatG:       row.SaturatedFatG,
		TransFatG:           row.TransFatG,
		PolyunsaturatedFatG: row.PolyunsaturatedFatG,
		MonounsaturatedFatG: row.MonounsaturatedFatG,
		CholesterolMg:       row.CholesterolMg,
		SodiumMg:            row.SodiumMg,
		TotalCarbohydrateG:  row.TotalCarbohydrateG,
		DietaryFiberG:       row.DietaryFiberG,
		TotalSugarsG:        row.TotalSugarsG,
		AddedSugarsG:        row.AddedSugarsG,
		ProteinG:            row.ProteinG,
		VitaminDMcg:         row.VitaminDMcg,
		CalciumMg:           row.CalciumMg,
		IronMg:              row.IronMg,
		PotassiumMg:         row.PotassiumMg,
		VitaminAMcg:         row.VitaminAMcg,
		VitaminCMg:          row.VitaminCMg,
	}
}
