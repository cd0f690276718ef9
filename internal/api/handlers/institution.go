package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/service"
	"github.com/doafacil/doafacil/internal/validation"
)

// InstitutionHandler handles institution-related HTTP requests.
type InstitutionHandler struct {
	institutionService *service.InstitutionService
}

// NewInstitutionHandler creates a new institution handler.
func NewInstitutionHandler(institutionService *service.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{
		institutionService: institutionService,
	}
}

// Search handles GET /api/v1/institutions
func (h *InstitutionHandler) Search(w http.ResponseWriter, r *http.Request) {
	params, errs := validation.ParseSearchParams(r.URL.Query())
	if !errs.Empty() {
		respondValidationError(w, errs)
		return
	}

	result, err := h.institutionService.Search(r.Context(), params)
	if err != nil {
		log.Printf("Failed to search institutions: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to search institutions")
		return
	}

	respondSuccess(w, http.StatusOK, result, "")
}

// Get handles GET /api/v1/institutions/{id}
func (h *InstitutionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid institution id")
		return
	}

	inst, err := h.institutionService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Institution not found")
			return
		}
		log.Printf("Failed to fetch institution %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch institution")
		return
	}

	respondSuccess(w, http.StatusOK, inst, "")
}

// Create handles POST /api/v1/institutions
func (h *InstitutionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInstitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.ValidateCreateInstitution(&req); !errs.Empty() {
		respondValidationError(w, errs)
		return
	}

	inst, err := h.institutionService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCNPJAlreadyRegistered):
			respondError(w, http.StatusBadRequest, "CNPJ already registered")
		case errors.Is(err, service.ErrUnknownCategory):
			respondError(w, http.StatusBadRequest, "One or more categories were not found")
		case errors.Is(err, service.ErrUnknownDonationType):
			respondError(w, http.StatusBadRequest, "One or more donation types were not found")
		default:
			log.Printf("Failed to create institution: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to create institution")
		}
		return
	}

	respondSuccess(w, http.StatusCreated, inst, "Institution created successfully")
}

// Update handles PUT /api/v1/institutions/{id}
func (h *InstitutionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid institution id")
		return
	}

	var req domain.UpdateInstitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.ValidateUpdateInstitution(&req); !errs.Empty() {
		respondValidationError(w, errs)
		return
	}

	inst, err := h.institutionService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(w, http.StatusNotFound, "Institution not found")
		case errors.Is(err, service.ErrCNPJAlreadyRegistered):
			respondError(w, http.StatusBadRequest, "CNPJ already registered")
		case errors.Is(err, service.ErrUnknownCategory):
			respondError(w, http.StatusBadRequest, "One or more categories were not found")
		case errors.Is(err, service.ErrUnknownDonationType):
			respondError(w, http.StatusBadRequest, "One or more donation types were not found")
		default:
			log.Printf("Failed to update institution %s: %v", id, err)
			respondError(w, http.StatusInternalServerError, "Failed to update institution")
		}
		return
	}

	respondSuccess(w, http.StatusOK, inst, "Institution updated successfully")
}

// Delete handles DELETE /api/v1/institutions/{id} (soft delete).
func (h *InstitutionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid institution id")
		return
	}

	if err := h.institutionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Institution not found")
			return
		}
		log.Printf("Failed to delete institution %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete institution")
		return
	}

	respondSuccess(w, http.StatusOK, nil, "Institution removed successfully")
}

// verifyRequest is the approval payload; verified defaults to true.
type verifyRequest struct {
	Verified *bool `json:"verified"`
}

// Verify handles PATCH /api/v1/institutions/{id}/verify
func (h *InstitutionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid institution id")
		return
	}

	verified := true
	if r.ContentLength != 0 {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Verified != nil {
			verified = *req.Verified
		}
	}

	inst, err := h.institutionService.SetVerified(r.Context(), id, verified)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Institution not found")
			return
		}
		log.Printf("Failed to verify institution %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update verification")
		return
	}

	respondSuccess(w, http.StatusOK, inst, "Verification updated successfully")
}
