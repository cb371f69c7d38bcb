package nutrition

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	applog "nutricalc/internal/log"
)

// ErrFetch wraps every failure to read from the Source.
var ErrFetch = errors.New("nutrition: fetch failed")

const noActiveRecipeWarning = "No active recipe found for this product."

// Calculator derives label nutrition for products from their active recipe.
type Calculator struct {
	source Source
}

// NewCalculator returns a Calculator reading from source.
func NewCalculator(source Source) *Calculator {
	return &Calculator{source: source}
}

// Calculate aggregates the active recipe of productID into batch and per-serving
// nutrition. A product without an active recipe yields an empty result carrying a
// warning rather than an error.
func (c *Calculator) Calculate(ctx context.Context, productID uint, opts Options) (CalculatedNutrition, error) {
	if err := opts.Validate(); err != nil {
		return CalculatedNutrition{}, err
	}

	applog.Debug(ctx, "calculating product nutrition",
		"productID", productID,
		"yieldLossPercent", opts.YieldLossPercent,
		"overrunPercent", opts.OverrunPercent,
		"servingSizeG", opts.ServingSizeG,
	)

	recipe, err := c.source.ActiveRecipe(ctx, productID)
	if err != nil {
		return CalculatedNutrition{}, fmt.Errorf("%w: load active recipe for product %d: %w", ErrFetch, productID, err)
	}
	if recipe == nil {
		applog.Debug(ctx, "no active recipe", "productID", productID)
		return emptyResult(opts), nil
	}

	var (
		items   []RecipeItem
		records map[uint]NutritionRecord
		units   []Unit
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		loaded, err := c.source.RecipeItems(groupCtx, recipe.ID)
		if err != nil {
			return fmt.Errorf("%w: load items for recipe %d: %w", ErrFetch, recipe.ID, err)
		}
		items = loaded
		if len(items) == 0 {
			return nil
		}
		found, err := c.source.NutritionByMaterial(groupCtx, distinctMaterialIDs(items))
		if err != nil {
			return fmt.Errorf("%w: load material nutrition for recipe %d: %w", ErrFetch, recipe.ID, err)
		}
		records = found
		return nil
	})
	group.Go(func() error {
		loaded, err := c.source.Units(groupCtx)
		if err != nil {
			return fmt.Errorf("%w: load units of measure: %w", ErrFetch, err)
		}
		units = loaded
		return nil
	})
	if err := group.Wait(); err != nil {
		return CalculatedNutrition{}, err
	}

	result := aggregate(items, records, buildUnitIndex(units), opts)

	if len(result.Warnings) > 0 {
		applog.Warn(ctx, "product nutrition calculated with warnings",
			"productID", productID,
			"recipeID", recipe.ID,
			"warnings", len(result.Warnings),
			"missingNutrition", result.MissingNutritionCount,
		)
	}
	applog.Debug(ctx, "product nutrition calculated",
		"productID", productID,
		"ingredients", len(result.Ingredients),
		"batchWeightG", result.BatchWeightG,
		"servingsPerBatch", result.ServingsPerBatch,
	)
	return result, nil
}

func aggregate(items []RecipeItem, records map[uint]NutritionRecord, units unitIndex, opts Options) CalculatedNutrition {
	result := CalculatedNutrition{
		ServingSizeG:           opts.ServingSizeG,
		ServingSizeDescription: opts.ServingSizeDescription,
		Ingredients:            make([]IngredientContribution, 0, len(items)),
		Warnings:               []string{},
	}

	var totals NutrientTotals
	totalWeightG := 0.0

	for _, item := range items {
		quantityG, warning := quantityInGrams(item, units)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		record, ok := records[item.MaterialID]
		per100g := NutrientTotals{}
		if ok {
			per100g = record.Totals()
		} else {
			result.MissingNutritionCount++
		}

		scaled := per100g.Scale(quantityG / 100)
		result.Ingredients = append(result.Ingredients, IngredientContribution{
			MaterialID:       item.MaterialID,
			MaterialName:     item.Material.Name,
			MaterialCode:     item.Material.Code,
			QuantityG:        quantityG,
			HasNutritionData: ok,
			NutrientTotals:   scaled,
		})

		totalWeightG += quantityG
		totals = totals.Add(scaled)
	}

	adjustedWeightG := totalWeightG * (1 - opts.YieldLossPercent/100)
	volumeFactor := 1 + opts.OverrunPercent/100
	effectiveVolumeML := adjustedWeightG * volumeFactor

	// Nutrients follow mass while servings are measured by volume after aeration,
	// so a serving is converted back to unaerated mix before taking its share.
	perServingFactor := 0.0
	if adjustedWeightG != 0 {
		perServingFactor = (opts.ServingSizeG / volumeFactor) / adjustedWeightG
	}

	result.BatchTotals = totals
	result.BatchWeightG = adjustedWeightG
	result.ServingsPerBatch = roundTenths(effectiveVolumeML / opts.ServingSizeG)
	result.PerServing = totals.Scale(perServingFactor)

	if result.MissingNutritionCount > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d ingredient(s) missing nutrition data.", result.MissingNutritionCount))
	}
	return result
}

// quantityInGrams converts an item to grams. Quantities in units without a known
// weight factor are taken as grams and reported in the returned warning.
func quantityInGrams(item RecipeItem, units unitIndex) (float64, string) {
	code := ""
	if item.UnitID != nil {
		if unit, ok := units[*item.UnitID]; ok {
			if unit.known {
				return item.QuantityRequired * unit.factor, ""
			}
			code = unit.code
		}
	}
	return item.QuantityRequired, fmt.Sprintf("Unknown unit %q for ingredient %s; quantity assumed to be grams.", code, item.Material.Name)
}

func emptyResult(opts Options) CalculatedNutrition {
	return CalculatedNutrition{
		ServingSizeG:           opts.ServingSizeG,
		ServingSizeDescription: opts.ServingSizeDescription,
		Ingredients:            []IngredientContribution{},
		Warnings:               []string{noActiveRecipeWarning},
	}
}

func distinctMaterialIDs(items []RecipeItem) []uint {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if seen[item.MaterialID] {
			continue
		}
		seen[item.MaterialID] = true
		ids = append(ids, item.MaterialID)
	}
	return ids
}

func roundTenths(value float64) float64 {
	return math.Round(value*10) / 10
}
