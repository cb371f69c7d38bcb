package importer

import (
	"regexp"
	"sort"
	"strings"

	"nutricalc/models"
)

var (
	slugPattern = regexp.MustCompile(`[^a-z0-9]+`)
	// valuePattern captures the number and optional unit directly after a label.
	valuePattern = regexp.MustCompile(`^[\s:=\-]*(\d*\.?\d+)\s*(kcal|kj|cal|mcg|µg|μg|ug|mg|g)?`)
)

// nutrientColumn binds one MaterialNutrition field to the CSV headers and spec
// sheet labels it may appear under.
type nutrientColumn struct {
	headers []string
	labels  []string
	unit    string
	set     func(*models.MaterialNutrition, *float64)
}

var nutrientColumns = []nutrientColumn{
	{[]string{"calories", "energy_kcal", "kcal"}, []string{"calories", "energy"}, "kcal", func(n *models.MaterialNutrition, v *float64) { n.Calories = v }},
	{[]string{"total_fat_g", "total_fat", "fat"}, []string{"total fat", "fat"}, "g", func(n *models.MaterialNutrition, v *float64) { n.TotalFatG = v }},
	{[]string{"saturated_fat_g", "saturated_fat"}, []string{"saturated fat"}, "g", func(n *models.MaterialNutrition, v *float64) { n.SaturatedFatG = v }},
	{[]string{"trans_fat_g", "trans_fat"}, []string{"trans fat"}, "g", func(n *models.MaterialNutrition, v *float64) { n.TransFatG = v }},
	{[]string{"polyunsaturated_fat_g", "polyunsaturated_fat"}, []string{"polyunsaturated fat"}, "g", func(n *models.MaterialNutrition, v *float64) { n.PolyunsaturatedFatG = v }},
	{[]string{"monounsaturated_fat_g", "monounsaturated_fat"}, []string{"monounsaturated fat"}, "g", func(n *models.MaterialNutrition, v *float64) { n.MonounsaturatedFatG = v }},
	{[]string{"cholesterol_mg", "cholesterol"}, []string{"cholesterol"}, "mg", func(n *models.MaterialNutrition, v *float64) { n.CholesterolMg = v }},
	{[]string{"sodium_mg", "sodium"}, []string{"sodium"}, "mg", func(n *models.MaterialNutrition, v *float64) { n.SodiumMg = v }},
	{[]string{"total_carbohydrate_g", "total_carbohydrate", "carbohydrate", "carbs"}, []string{"total carbohydrate", "carbohydrate"}, "g", func(n *models.MaterialNutrition, v *float64) { n.TotalCarbohydrateG = v }},
	{[]string{"dietary_fiber_g", "dietary_fiber", "fiber"}, []string{"dietary fiber", "fiber"}, "g", func(n *models.MaterialNutrition, v *float64) { n.DietaryFiberG = v }},
	{[]string{"total_sugars_g", "total_sugars", "sugars"}, []string{"total sugars", "sugars"}, "g", func(n *models.MaterialNutrition, v *float64) { n.TotalSugarsG = v }},
	{[]string{"added_sugars_g", "added_sugars"}, []string{"added sugars", "includes"}, "g", func(n *models.MaterialNutrition, v *float64) { n.AddedSugarsG = v }},
	{[]string{"protein_g", "protein"}, []string{"protein"}, "g", func(n *models.MaterialNutrition, v *float64) { n.ProteinG = v }},
	{[]string{"vitamin_d_mcg", "vitamin_d"}, []string{"vitamin d"}, "mcg", func(n *models.MaterialNutrition, v *float64) { n.VitaminDMcg = v }},
	{[]string{"calcium_mg", "calcium"}, []string{"calcium"}, "mg", func(n *models.MaterialNutrition, v *float64) { n.CalciumMg = v }},
	{[]string{"iron_mg", "iron"}, []string{"iron"}, "mg", func(n *models.MaterialNutrition, v *float64) { n.IronMg = v }},
	{[]string{"potassium_mg", "potassium"}, []string{"potassium"}, "mg", func(n *models.MaterialNutrition, v *float64) { n.PotassiumMg = v }},
	{[]string{"vitamin_a_mcg", "vitamin_a"}, []string{"vitamin a"}, "mcg", func(n *models.MaterialNutrition, v *float64) { n.VitaminAMcg = v }},
	{[]string{"vitamin_c_mg", "vitamin_c"}, []string{"vitamin c"}, "mg", func(n *models.MaterialNutrition, v *float64) { n.VitaminCMg = v }},
}

// unitScale expresses each spec sheet unit in its column's base quantity: grams
// for mass, kilocalories for energy.
var unitScale = map[string]struct {
	energy bool
	scale  float64
}{
	"kcal": {energy: true, scale: 1},
	"cal":  {energy: true, scale: 1},
	"kj":   {energy: true, scale: 1 / 4.184},
	"g":    {scale: 1},
	"mg":   {scale: 1e-3},
	"mcg":  {scale: 1e-6},
	"µg":   {scale: 1e-6},
	"μg":   {scale: 1e-6},
	"ug":   {scale: 1e-6},
}

var materialCodeHeaders = []string{"material_code", "code", "material", "item_code"}

type labelMatcher struct {
	label  string
	column *nutrientColumn
}

// labelMatchers is ordered longest label first so "total fat" wins over "fat".
var labelMatchers = func() []labelMatcher {
	var matchers []labelMatcher
	for idx := range nutrientColumns {
		for _, label := range nutrientColumns[idx].labels {
			matchers = append(matchers, labelMatcher{label: label, column: &nutrientColumns[idx]})
		}
	}
	sort.SliceStable(matchers, func(i, j int) bool {
		return len(matchers[i].label) > len(matchers[j].label)
	})
	return matchers
}()

func slug(value string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "_"), "_")
}
