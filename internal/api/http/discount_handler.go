package http

import (
	"net/http"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/service"
)

// DiscountHandler serves the discount maintenance endpoints
type DiscountHandler struct {
	svc service.DiscountService
}

func NewDiscountHandler(svc service.DiscountService) *DiscountHandler {
	return &DiscountHandler{svc: svc}
}

type discountRequest struct {
	StudentName    string  `json:"student_name" validate:"required"`
	Class          string  `json:"class" validate:"required"`
	Group          string  `json:"group"`
	Section        string  `json:"section"`
	Session        string  `json:"session" validate:"required"`
	FeeTypeName    string  `json:"fee_type_name" validate:"required"`
	Kind           string  `json:"kind" validate:"required,oneof=FIXED PERCENTAGE"`
	RegularAmount  float64 `json:"regular_amount" validate:"gte=0"`
	DiscountAmount float64 `json:"discount_amount" validate:"gte=0"`
	StartDate      string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string  `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (r *discountRequest) toDomain() *domain.Discount {
	return &domain.Discount{
		StudentName:    r.StudentName,
		Class:          r.Class,
		Group:          r.Group,
		Section:        r.Section,
		Session:        r.Session,
		FeeTypeName:    r.FeeTypeName,
		Kind:           domain.DiscountKind(r.Kind),
		RegularAmount:  r.RegularAmount,
		DiscountAmount: r.DiscountAmount,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
	}
}

func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	d := req.toDomain()
	if err := h.svc.CreateDiscount(r.Context(), d); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.svc.ListDiscounts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, discounts)
}

func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req discountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	d := req.toDomain()
	d.ID = id
	if err := h.svc.UpdateDiscount(r.Context(), d); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.DeleteDiscount(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
