package nutrition

// NutrientTotals is the label nutrient vector. The zero value is the identity for Add.
type NutrientTotals struct {
	Calories            float64 `json:"calories"`
	TotalFatG           float64 `json:"total_fat_g"`
	SaturatedFatG       float64 `json:"saturated_fat_g"`
	TransFatG           float64 `json:"trans_fat_g"`
	PolyunsaturatedFatG float64 `json:"polyunsaturated_fat_g"`
	MonounsaturatedFatG float64 `json:"monounsaturated_fat_g"`
	CholesterolMg       float64 `json:"cholesterol_mg"`
	SodiumMg            float64 `json:"sodium_mg"`
	TotalCarbohydrateG  float64 `json:"total_carbohydrate_g"`
	DietaryFiberG       float64 `json:"dietary_fiber_g"`
	TotalSugarsG        float64 `json:"total_sugars_g"`
	AddedSugarsG        float64 `json:"added_sugars_g"`
	ProteinG            float64 `json:"protein_g"`
	VitaminDMcg         float64 `json:"vitamin_d_mcg"`
	CalciumMg           float64 `json:"calcium_mg"`
	IronMg              float64 `json:"iron_mg"`
	PotassiumMg         float64 `json:"potassium_mg"`
	VitaminAMcg         float64 `json:"vitamin_a_mcg"`
	VitaminCMg          float64 `json:"vitamin_c_mg"`
}

// Add returns the element-wise sum of t and o.
func (t NutrientTotals) Add(o NutrientTotals) NutrientTotals {
	return NutrientTotals{
		Calories:            t.Calories + o.Calories,
		TotalFatG:           t.TotalFatG + o.TotalFatG,
		SaturatedFatG:       t.SaturatedFatG + o.SaturatedFatG,
		TransFatG:           t.TransFatG + o.TransFatG,
		PolyunsaturatedFatG: t.PolyunsaturatedFatG + o.PolyunsaturatedFatG,
		MonounsaturatedFatG: t.MonounsaturatedFatG + o.MonounsaturatedFatG,
		CholesterolMg:       t.CholesterolMg + o.CholesterolMg,
		SodiumMg:            t.SodiumMg + o.SodiumMg,
		TotalCarbohydrateG:  t.TotalCarbohydrateG + o.TotalCarbohydrateG,
		DietaryFiberG:       t.DietaryFiberG + o.DietaryFiberG,
		TotalSugarsG:        t.TotalSugarsG + o.TotalSugarsG,
		AddedSugarsG:        t.AddedSugarsG + o.AddedSugarsG,
		ProteinG:            t.ProteinG + o.ProteinG,
		VitaminDMcg:         t.VitaminDMcg + o.VitaminDMcg,
		CalciumMg:           t.CalciumMg + o.CalciumMg,
		IronMg:              t.IronMg + o.IronMg,
		PotassiumMg:         t.PotassiumMg + o.PotassiumMg,
		VitaminAMcg:         t.VitaminAMcg + o.VitaminAMcg,
		VitaminCMg:          t.VitaminCMg + o.VitaminCMg,
	}
}

// Scale returns t with every field multiplied by factor.
func (t NutrientTotals) Scale(factor float64) NutrientTotals {
	return NutrientTotals{
		Calories:            t.Calories * factor,
		TotalFatG:           t.TotalFatG * factor,
		SaturatedFatG:       t.SaturatedFatG * factor,
		TransFatG:           t.TransFatG * factor,
		PolyunsaturatedFatG: t.PolyunsaturatedFatG * factor,
		MonounsaturatedFatG: t.MonounsaturatedFatG * factor,
		CholesterolMg:       t.CholesterolMg * factor,
		SodiumMg:            t.SodiumMg * factor,
		TotalCarbohydrateG:  t.TotalCarbohydrateG * factor,
		DietaryFiberG:       t.DietaryFiberG * factor,
		TotalSugarsG:        t.TotalSugarsG * factor,
		AddedSugarsG:        t.AddedSugarsG * factor,
		ProteinG:            t.ProteinG * factor,
		VitaminDMcg:         t.VitaminDMcg * factor,
		CalciumMg:           t.CalciumMg * factor,
		IronMg:              t.IronMg * factor,
		PotassiumMg:         t.PotassiumMg * factor,
		VitaminAMcg:         t.VitaminAMcg * factor,
		VitaminCMg:          t.VitaminCMg * factor,
	}
}

// IngredientContribution is one recipe line's nutrients at its batch quantity.
type IngredientContribution struct {
	MaterialID       uint    `json:"material_id"`
	MaterialName     string  `json:"material_name"`
	MaterialCode     string  `json:"material_code"`
	QuantityG        float64 `json:"quantity_g"`
	HasNutritionData bool    `json:"has_nutrition_data"`
	NutrientTotals
}

// CalculatedNutrition is the result of one Calculate call.
type CalculatedNutrition struct {
	BatchTotals            NutrientTotals           `json:"batch_totals"`
	BatchWeightG           float64                  `json:"batch_weight_g"`
	PerServing             NutrientTotals           `json:"per_serving"`
	ServingSizeG           float64                  `json:"serving_size_g"`
	ServingSizeDescription string                   `json:"serving_size_description"`
	ServingsPerBatch       float64                  `json:"servings_per_batch"`
	Ingredients            []IngredientContribution `json:"ingredients"`
	MissingNutritionCount  int                      `json:"missing_nutrition_count"`
	Warnings               []string                 `json:"warnings"`
}
