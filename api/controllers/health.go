package controllers

import (
	"net/http"

	"github.com/metalldk/storefront/api/responses"
	"github.com/metalldk/storefront/pkg/config"
)

func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, responses.StatusOK)
	}
}
