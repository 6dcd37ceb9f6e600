package http

import (
	"net/http"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/service"
)

// CatalogHandler serves fee type and fee label maintenance
type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type feeTypeRequest struct {
	Class           string  `json:"class" validate:"required"`
	Group           string  `json:"group"`
	Section         string  `json:"section"`
	Session         string  `json:"session" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Amount          float64 `json:"amount" validate:"gte=0"`
	LastPayableDate *string `json:"last_payable_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *CatalogHandler) CreateFeeType(w http.ResponseWriter, r *http.Request) {
	var req feeTypeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ft := &domain.FeeType{
		Class:           req.Class,
		Group:           req.Group,
		Section:         req.Section,
		Session:         req.Session,
		Name:            req.Name,
		Amount:          req.Amount,
		LastPayableDate: req.LastPayableDate,
	}
	if err := h.svc.CreateFeeType(r.Context(), ft); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ft)
}

func (h *CatalogHandler) ListFeeTypes(w http.ResponseWriter, r *http.Request) {
	feeTypes, err := h.svc.ListFeeTypes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, feeTypes)
}

func (h *CatalogHandler) UpdateFeeType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req feeTypeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ft := &domain.FeeType{
		ID:              id,
		Class:           req.Class,
		Group:           req.Group,
		Section:         req.Section,
		Session:         req.Session,
		Name:            req.Name,
		Amount:          req.Amount,
		LastPayableDate: req.LastPayableDate,
	}
	if err := h.svc.UpdateFeeType(r.Context(), ft); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ft)
}

func (h *CatalogHandler) DeleteFeeType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.DeleteFeeType(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type feeLabelRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *CatalogHandler) CreateFeeLabel(w http.ResponseWriter, r *http.Request) {
	var req feeLabelRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	label := &domain.FeeLabel{Name: req.Name}
	if err := h.svc.CreateFeeLabel(r.Context(), label); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, label)
}

func (h *CatalogHandler) ListFeeLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := h.svc.ListFeeLabels(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, labels)
}

func (h *CatalogHandler) DeleteFeeLabel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.DeleteFeeLabel(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
