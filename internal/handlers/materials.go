package handlers

import (
	"net/http"
	"strings"

	applog "nutricalc/internal/log"
)

type missingNutritionMaterial struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// MaterialsMissingNutrition lists materials in active recipes that still need
// nutrition facts entered.
func MaterialsMissingNutrition(w http.ResponseWriter, r *http.Request) {
	if source == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	materials, err := source.MaterialsMissingNutrition(ctx)
	if err != nil {
		applog.Error(ctx, "failed to list materials missing nutrition", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load materials")
		return
	}

	responses := make([]missingNutritionMaterial, 0, len(materials))
	for _, material := range materials {
		responses = append(responses, missingNutritionMaterial{
			ID:   material.ID,
			Code: strings.TrimSpace(material.Code),
			Name: strings.TrimSpace(material.Name),
		})
	}
	writeJSON(w, http.StatusOK, responses)
}
