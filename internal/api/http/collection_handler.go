package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/service"
)

// CollectionHandler serves the collection ledger endpoints
type CollectionHandler struct {
	svc service.CollectionService
}

func NewCollectionHandler(svc service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

type recordPaymentRequest struct {
	StudentID     int32    `json:"student_id" validate:"required,gt=0"`
	FeeTypes      []string `json:"fee_types" validate:"required,min=1,dive,required"`
	PaidAmount    float64  `json:"paid_amount" validate:"required,gt=0"`
	PayDate       string   `json:"pay_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string   `json:"payment_method" validate:"omitempty,oneof=CASH CHEQUE CARD MOBILE_BANKING"`
}

func (h *CollectionHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	col, err := h.svc.RecordPayment(r.Context(), service.PaymentRequest{
		StudentID:     req.StudentID,
		FeeTypeNames:  req.FeeTypes,
		Paid:          req.PaidAmount,
		PayDate:       req.PayDate,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, col)
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	cols, err := h.svc.ListCollections(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cols)
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	serial, err := pathID(r, "serial")
	if err != nil {
		respondError(w, err)
		return
	}

	col, err := h.svc.GetCollection(r.Context(), serial)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, col)
}

func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	serial, err := pathID(r, "serial")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch domain.CollectionPatch
	if err := decodeAndValidate(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	col, err := h.svc.UpdateCollection(r.Context(), serial, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, col)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	serial, err := pathID(r, "serial")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.DeleteCollection(r.Context(), serial); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, service.ErrValidation
	}
	return int32(id), nil
}
