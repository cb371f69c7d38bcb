package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	applog "nutricalc/internal/log"
	"nutricalc/internal/nutrition"
)

type productNutritionResponse struct {
	ProductID uint   `json:"product_id"`
	Profile   string `json:"profile,omitempty"`
	nutrition.CalculatedNutrition
}

// ProductNutrition serves GET /api/products/{id}/nutrition.
func ProductNutrition(w http.ResponseWriter, r *http.Request) {
	if calculator == nil {
		applog.Debug(r.Context(), "nutrition request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products"), "/")
	segments := strings.Split(path, "/")
	if len(segments) != 2 || segments[1] != "nutrition" {
		http.NotFound(w, r)
		return
	}

	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil || idValue == 0 {
		applog.Debug(r.Context(), "invalid product identifier", "identifier", segments[0], "error", err)
		http.NotFound(w, r)
		return
	}
	productID := uint(idValue)

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	profileName := strings.TrimSpace(query.Get("profile"))
	opts, err := optionsFromQuery(query, profileName)
	if err != nil {
		applog.Debug(r.Context(), "invalid nutrition options", "productID", productID, "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := calculator.Calculate(r.Context(), productID, opts)
	if err != nil {
		switch {
		case errors.Is(err, nutrition.ErrInvalidOptions):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			applog.Error(r.Context(), "failed to calculate product nutrition", "error", err, "productID", productID)
			writeJSONError(w, http.StatusInternalServerError, "unable to calculate nutrition")
		}
		return
	}

	writeJSON(w, http.StatusOK, productNutritionResponse{
		ProductID:           productID,
		Profile:             strings.ToLower(profileName),
		CalculatedNutrition: result,
	})
}

// optionsFromQuery layers explicit query values over the named profile.
func optionsFromQuery(query url.Values, profileName string) (nutrition.Options, error) {
	opts, err := profiles.Options(profileName)
	if err != nil {
		return nutrition.Options{}, err
	}

	for _, field := range []struct {
		key    string
		target *float64
	}{
		{"yield_loss_percent", &opts.YieldLossPercent},
		{"overrun_percent", &opts.OverrunPercent},
		{"serving_size_g", &opts.ServingSizeG},
	} {
		raw := strings.TrimSpace(query.Get(field.key))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nutrition.Options{}, fmt.Errorf("%s must be a number", field.key)
		}
		*field.target = value
	}

	if description := strings.TrimSpace(query.Get("serving_size_description")); description != "" {
		opts.ServingSizeDescription = description
	}
	return opts, nil
}
