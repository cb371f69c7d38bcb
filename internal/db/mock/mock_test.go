package mock

import (
	"context"
	"testing"

	"nutricalc/internal/db"
	"nutricalc/internal/nutrition"
	"nutricalc/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	ctx := context.Background()
	database, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var product models.Product
	if err := database.WithContext(ctx).First(&product).Error; err != nil {
		t.Fatalf("query product: %v", err)
	}

	var items []models.ProductRecipeItem
	if err := database.WithContext(ctx).Find(&items).Error; err != nil {
		t.Fatalf("query recipe items: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded recipe items")
	}

	result, err := nutrition.NewCalculator(db.NewNutritionSource(database)).
		Calculate(ctx, product.ID, nutrition.DefaultOptions())
	if err != nil {
		t.Fatalf("calculate seeded product: %v", err)
	}
	if result.MissingNutritionCount != 1 {
		t.Fatalf("expected the vanilla paste to lack nutrition, got %d missing", result.MissingNutritionCount)
	}
	if result.ServingsPerBatch <= 0 || result.PerServing.Calories <= 0 {
		t.Fatalf("expected positive serving figures, got %+v", result)
	}
}

func TestNewIsIdempotent(t *testing.T) {
	ctx := context.Background()
	first, err := New(ctx)
	if err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(ctx); err != nil {
		t.Fatalf("second New: %v", err)
	}

	var count int64
	if err := first.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single seeded product, got %d", count)
	}
}
