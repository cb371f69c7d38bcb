package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutricalc/internal/db"
	applog "nutricalc/internal/log"
	"nutricalc/models"
)

// New returns an in-memory sqlite database seeded with a representative plant.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:nutricalc-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	var products int64
	if err := database.WithContext(ctx).Model(&models.Product{}).Count(&products).Error; err != nil {
		return nil, err
	}
	if products == 0 {
		if err := seed(ctx, database); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		units := map[string]*models.UnitOfMeasure{
			"G":  {Code: "G", Name: "Gram"},
			"KG": {Code: "KG", Name: "Kilogram"},
			"LB": {Code: "LB", Name: "Pound"},
			"EA": {Code: "EA", Name: "Each"},
		}
		for _, code := range []string{"G", "KG", "LB", "EA"} {
			if err := tx.Create(units[code]).Error; err != nil {
				return err
			}
		}

		cream := models.Material{Code: "RM-1001", Name: "Heavy Cream 40%", BaseUnitID: &units["KG"].ID}
		milk := models.Material{Code: "RM-1002", Name: "Whole Milk", BaseUnitID: &units["KG"].ID}
		sugar := models.Material{Code: "RM-1003", Name: "Cane Sugar", BaseUnitID: &units["LB"].ID}
		yolk := models.Material{Code: "RM-1004", Name: "Pasteurized Egg Yolk", BaseUnitID: &units["KG"].ID}
		vanilla := models.Material{Code: "RM-1005", Name: "Vanilla Bean Paste", BaseUnitID: &units["EA"].ID}
		for _, material := range []*models.Material{&cream, &milk, &sugar, &yolk, &vanilla} {
			if err := tx.Create(material).Error; err != nil {
				return err
			}
		}

		facts := []models.MaterialNutrition{
			{MaterialID: cream.ID, Calories: f(340), TotalFatG: f(36), SaturatedFatG: f(23), TransFatG: f(1.2), CholesterolMg: f(113), SodiumMg: f(27), TotalCarbohydrateG: f(2.8), TotalSugarsG: f(2.9), ProteinG: f(2.1), CalciumMg: f(66), VitaminAMcg: f(411), Source: "USDA FDC 170859"},
			{MaterialID: milk.ID, Calories: f(61), TotalFatG: f(3.3), SaturatedFatG: f(1.9), CholesterolMg: f(10), SodiumMg: f(43), TotalCarbohydrateG: f(4.8), TotalSugarsG: f(5.1), ProteinG: f(3.2), VitaminDMcg: f(1.3), CalciumMg: f(113), PotassiumMg: f(132), Source: "USDA FDC 171265"},
			{MaterialID: sugar.ID, Calories: f(387), TotalCarbohydrateG: f(100), TotalSugarsG: f(100), AddedSugarsG: f(100), Source: "supplier spec sheet"},
			{MaterialID: yolk.ID, Calories: f(322), TotalFatG: f(26.5), SaturatedFatG: f(9.6), CholesterolMg: f(1085), SodiumMg: f(48), TotalCarbohydrateG: f(3.6), ProteinG: f(15.9), VitaminDMcg: f(5.4), IronMg: f(2.7), Source: "USDA FDC 172184"},
		}
		for _, fact := range facts {
			fact := fact
			if err := tx.Create(&fact).Error; err != nil {
				return err
			}
		}

		product := models.Product{Code: "FG-2001", Name: "French Vanilla Ice Cream 1.5qt"}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		recipe := models.ProductRecipe{
			ProductID:   product.ID,
			Name:        "French Vanilla base v3",
			BatchSize:   100,
			BatchUnitID: &units["KG"].ID,
			IsActive:    true,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		items := []models.ProductRecipeItem{
			{RecipeID: recipe.ID, SortOrder: 1, MaterialID: cream.ID, QuantityRequired: 42, UnitID: &units["KG"].ID},
			{RecipeID: recipe.ID, SortOrder: 2, MaterialID: milk.ID, QuantityRequired: 35, UnitID: &units["KG"].ID},
			{RecipeID: recipe.ID, SortOrder: 3, MaterialID: sugar.ID, QuantityRequired: 33, UnitID: &units["LB"].ID},
			{RecipeID: recipe.ID, SortOrder: 4, MaterialID: yolk.ID, QuantityRequired: 6.5, UnitID: &units["KG"].ID},
			{RecipeID: recipe.ID, SortOrder: 5, MaterialID: vanilla.ID, QuantityRequired: 4, UnitID: &units["EA"].ID},
		}
		for _, item := range items {
			item := item
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		applog.Debug(ctx, "mock database seeded", "productID", product.ID, "recipeID", recipe.ID)
		return nil
	})
}

func f(v float64) *float64 { return &v }
