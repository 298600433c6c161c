// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/dock-quiz/middleware"
	"github.com/danielhkuo/dock-quiz/models"
	"github.com/danielhkuo/dock-quiz/quiz"
)

type CatalogHandler struct {
	catalog *quiz.Catalog
}

func NewCatalogHandler(catalog *quiz.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetCatalog handles GET /catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.CatalogResponse{
		Sections:  h.catalog.Sections(),
		Questions: h.catalog.Questions(),
	})
}
