package server

import (
	"context"
	"net/http"

	"nutricalc/internal/handlers"
	applog "nutricalc/internal/log"
	"nutricalc/internal/middleware"
)

func newRouter(limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.Handle("/api/products/", limiter.Middleware(http.HandlerFunc(handlers.ProductNutrition)))
	applog.Debug(context.Background(), "route registered", "path", "/api/products/{id}/nutrition", "limited", true)
	mux.Handle("/api/materials/missing-nutrition", limiter.Middleware(http.HandlerFunc(handlers.MaterialsMissingNutrition)))
	applog.Debug(context.Background(), "route registered", "path", "/api/materials/missing-nutrition", "limited", true)
	return mux
}
