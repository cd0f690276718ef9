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

// DonationTypeHandler handles donation type-related HTTP requests.
type DonationTypeHandler struct {
	catalogService *service.CatalogService
}

// NewDonationTypeHandler creates a new donation type handler.
func NewDonationTypeHandler(catalogService *service.CatalogService) *DonationTypeHandler {
	return &DonationTypeHandler{
		catalogService: catalogService,
	}
}

// List handles GET /api/v1/donation-types
func (h *DonationTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	donationTypes, err := h.catalogService.ListDonationTypes(r.Context())
	if err != nil {
		log.Printf("Failed to list donation types: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to list donation types")
		return
	}

	if donationTypes == nil {
		donationTypes = []domain.DonationType{}
	}

	respondSuccess(w, http.StatusOK, donationTypes, "")
}

// Create handles POST /api/v1/donation-types
func (h *DonationTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDonationTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.ValidateNamedResource(req.Name, req.Description); !errs.Empty() {
		respondValidationError(w, errs)
		return
	}

	donationType, err := h.catalogService.CreateDonationType(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNameAlreadyExists) {
			respondError(w, http.StatusBadRequest, "Donation type already exists")
			return
		}
		log.Printf("Failed to create donation type: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create donation type")
		return
	}

	respondSuccess(w, http.StatusCreated, donationType, "Donation type created successfully")
}
