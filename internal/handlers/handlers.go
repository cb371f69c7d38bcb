package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"nutricalc/internal/db"
	applog "nutricalc/internal/log"
	"nutricalc/internal/nutrition"
)

var (
	database   *gorm.DB
	source     *db.NutritionSource
	calculator *nutrition.Calculator
	profiles   nutrition.Profiles
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(gdb *gorm.DB, servingProfiles nutrition.Profiles) {
	database = gdb
	if servingProfiles == nil {
		servingProfiles = nutrition.Profiles{}
	}
	profiles = servingProfiles
	if gdb == nil {
		source = nil
		calculator = nil
		return
	}
	source = db.NewNutritionSource(gdb)
	calculator = nutrition.NewCalculator(source)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
