package importer

import (
	"strings"
	"testing"

	"nutricalc/models"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Total Fat (g)":  "total_fat_g",
		" Material Code": "material_code",
		"Vitamin D, mcg": "vitamin_d_mcg",
		"calories":       "calories",
	}
	for input, want := range tests {
		if got := slug(input); got != want {
			t.Errorf("slug(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestReadCSVLineNumbers(t *testing.T) {
	t.Parallel()

	rows, err := ReadCSV(strings.NewReader("Code,Calories\nA,1\n\nB,2\n"))
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Line != 2 || rows[0].MaterialCode() != "A" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Line != 4 || rows[1].MaterialCode() != "B" {
		t.Fatalf("expected B on line 4 after the blank line, got %+v", rows[1])
	}
}

func TestRowNutrition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  map[string]string
		wantErr bool
		check   func(*testing.T, Row)
	}{
		{
			name:   "aliases and thousands separator",
			values: map[string]string{"kcal": "1,200", "fat": "3.5", "fiber": "N/A"},
			check: func(t *testing.T, row Row) {
				facts, _ := row.Nutrition()
				if value(facts.Calories) != 1200.0 || value(facts.TotalFatG) != 3.5 || facts.DietaryFiberG != nil {
					t.Fatalf("unexpected facts: %+v", facts)
				}
			},
		},
		{
			name:   "canonical header wins over alias",
			values: map[string]string{"protein_g": "4", "protein": "9"},
			check: func(t *testing.T, row Row) {
				facts, _ := row.Nutrition()
				if value(facts.ProteinG) != 4.0 {
					t.Fatalf("protein = %v, want 4", value(facts.ProteinG))
				}
			},
		},
		{
			name:   "blank canonical cell falls through to alias",
			values: map[string]string{"total_fat_g": "", "fat": "3"},
			check: func(t *testing.T, row Row) {
				facts, _ := row.Nutrition()
				if value(facts.TotalFatG) != 3.0 {
					t.Fatalf("total fat = %v, want 3", value(facts.TotalFatG))
				}
			},
		},
		{name: "negative", values: map[string]string{"sodium_mg": "-1"}, wantErr: true},
		{name: "text", values: map[string]string{"iron_mg": "trace"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			row := Row{Line: 2, Values: tt.values}
			_, err := row.Nutrition()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Nutrition() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, row)
			}
		})
	}
}

func TestParseSpecSheetPrefersLongestLabel(t *testing.T) {
	t.Parallel()

	text := "Saturated Fat 23 g\nTrans Fat 1.2g\nTotal Fat 36g 46%\nFat 99\nVitamin A 411 mcg\nCalories 340\n"
	facts, found := ParseSpecSheet(text)
	if found != 5 {
		t.Fatalf("expected 5 nutrients, got %d", found)
	}
	if value(facts.TotalFatG) != 36.0 {
		t.Fatalf("total fat = %v, want 36", value(facts.TotalFatG))
	}
	if value(facts.SaturatedFatG) != 23.0 || value(facts.TransFatG) != 1.2 || value(facts.VitaminAMcg) != 411.0 {
		t.Fatalf("unexpected facts: %+v", facts)
	}
}

func TestParseSpecSheetLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		found int
		check func(*testing.T, models.MaterialNutrition)
	}{
		{
			name:  "calories from fat is not calories",
			text:  "Calories from Fat 320\nCalories 340",
			found: 1,
			check: func(t *testing.T, facts models.MaterialNutrition) {
				if value(facts.Calories) != 340.0 {
					t.Fatalf("calories = %v, want 340", value(facts.Calories))
				}
			},
		},
		{
			name:  "fatty acids line does not claim total fat",
			text:  "Fatty acids, total trans 1.2 g\nTotal Fat 36 g",
			found: 1,
			check: func(t *testing.T, facts models.MaterialNutrition) {
				if value(facts.TotalFatG) != 36.0 || facts.TransFatG != nil {
					t.Fatalf("unexpected fats: total=%v trans=%v", value(facts.TotalFatG), value(facts.TransFatG))
				}
			},
		},
		{
			name:  "grams of sodium convert to milligrams",
			text:  "Sodium 0.027 g",
			found: 1,
			check: func(t *testing.T, facts models.MaterialNutrition) {
				if value(facts.SodiumMg) != 27.0 {
					t.Fatalf("sodium = %v, want 27 mg", value(facts.SodiumMg))
				}
			},
		},
		{
			name:  "milligrams of protein convert to grams",
			text:  "Protein: 2100 mg",
			found: 1,
			check: func(t *testing.T, facts models.MaterialNutrition) {
				if value(facts.ProteinG) != 2.1 {
					t.Fatalf("protein = %v, want 2.1 g", value(facts.ProteinG))
				}
			},
		},
		{
			name:  "kilojoules convert to kilocalories",
			text:  "Energy 1422.56 kJ",
			found: 1,
			check: func(t *testing.T, facts models.MaterialNutrition) {
				if value(facts.Calories) != 340.0 {
					t.Fatalf("calories = %v, want 340", value(facts.Calories))
				}
			},
		},
		{
			name:  "unknown unit is skipped",
			text:  "Vitamin D 52 IU\nVitamin D 1.3 mcg",
			found: 1,
			check: func(t *testing.T, facts models.MaterialNutrition) {
				if value(facts.VitaminDMcg) != 1.3 {
					t.Fatalf("vitamin d = %v, want 1.3", value(facts.VitaminDMcg))
				}
			},
		},
		{
			name:  "energy unit on a mass nutrient is skipped",
			text:  "Sodium 12 kcal",
			found: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			facts, found := ParseSpecSheet(tt.text)
			if found != tt.found {
				t.Fatalf("found = %d, want %d", found, tt.found)
			}
			if tt.check != nil {
				tt.check(t, facts)
			}
		})
	}
}
