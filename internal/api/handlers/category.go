package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/service"
	"github.com/doafacil/doafacil/internal/validation"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	catalogService *service.CatalogService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(catalogService *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
	}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		log.Printf("Failed to list categories: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	respondSuccess(w, http.StatusOK, categories, "")
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.ValidateNamedResource(req.Name, req.Description); !errs.Empty() {
		respondValidationError(w, errs)
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNameAlreadyExists) {
			respondError(w, http.StatusBadRequest, "Category already exists")
			return
		}
		log.Printf("Failed to create category: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respondSuccess(w, http.StatusCreated, category, "Category created successfully")
}
