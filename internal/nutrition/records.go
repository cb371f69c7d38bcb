package nutrition

import "context"

// Source reads the records a calculation needs. Implementations must return
// (nil, nil) from ActiveRecipe when the product has no active recipe.
type Source interface {
	ActiveRecipe(ctx context.Context, productID uint) (*Recipe, error)
	RecipeItems(ctx context.Context, recipeID uint) ([]RecipeItem, error)
	// NutritionByMaterial loads every requested material in a single read.
	NutritionByMaterial(ctx context.Context, materialIDs []uint) (map[uint]NutritionRecord, error)
	Units(ctx context.Context) ([]Unit, error)
}

type Recipe struct {
	ID          uint
	ProductID   uint
	BatchSize   float64
	BatchUnitID *uint
}

type RecipeItem struct {
	MaterialID       uint
	QuantityRequired float64
	UnitID           *uint
	Material         Material
}

type Material struct {
	ID                  uint
	Code                string
	Name                string
	BaseUnitID          *uint
	UsageUnitID         *uint
	UsageUnitConversion *float64
}

type Unit struct {
	ID   uint
	Code string
	Name string
}

// NutritionRecord is a material's per-100 g nutrition as stored; nil means unreported.
type NutritionRecord struct {
	MaterialID uint

	Calories            *float64
	TotalFatG           *float64
	SaturatedFatG       *float64
	TransFatG           *float64
	PolyunsaturatedFatG *float64
	MonounsaturatedFatG *float64
	CholesterolMg       *float64
	SodiumMg            *float64
	TotalCarbohydrateG  *float64
	DietaryFiberG       *float64
	TotalSugarsG        *float64
	AddedSugarsG        *float64
	ProteinG            *float64
	VitaminDMcg         *float64
	CalciumMg           *float64
	IronMg              *float64
	PotassiumMg         *float64
	VitaminAMcg         *float64
	VitaminCMg          *float64
}

// Totals coalesces unreported nutrients to zero.
func (r NutritionRecord) Totals() NutrientTotals {
	return NutrientTotals{
		Calories:            coalesce(r.Calories),
		TotalFatG:           coalesce(r.TotalFatG),
		SaturatedFatG:       coalesce(r.SaturatedFatG),
		TransFatG:           coalesce(r.TransFatG),
		PolyunsaturatedFatG: coalesce(r.PolyunsaturatedFatG),
		MonounsaturatedFatG: coalesce(r.MonounsaturatedFatG),
		CholesterolMg:       coalesce(r.CholesterolMg),
		SodiumMg:            coalesce(r.SodiumMg),
		TotalCarbohydrateG:  coalesce(r.TotalCarbohydrateG),
		DietaryFiberG:       coalesce(r.DietaryFiberG),
		TotalSugarsG:        coalesce(r.TotalSugarsG),
		AddedSugarsG:        coalesce(r.AddedSugarsG),
		ProteinG:            coalesce(r.ProteinG),
		VitaminDMcg:         coalesce(r.VitaminDMcg),
		CalciumMg:           coalesce(r.CalciumMg),
		IronMg:              coalesce(r.IronMg),
		PotassiumMg:         coalesce(r.PotassiumMg),
		VitaminAMcg:         coalesce(r.VitaminAMcg),
		VitaminCMg:          coalesce(r.VitaminCMg),
	}
}

func coalesce(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
