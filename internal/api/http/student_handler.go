package http

import (
	"net/http"

	"schoolfees-backend/internal/repository"
	"schoolfees-backend/internal/service"
)

// StudentHandler exposes the ledger's view of students: their collections and
// the derived feesDue aggregate.
type StudentHandler struct {
	studentRepo   repository.StudentRepository
	collectionSvc service.CollectionService
	balanceSvc    service.BalanceService
}

func NewStudentHandler(studentRepo repository.StudentRepository, collectionSvc service.CollectionService, balanceSvc service.BalanceService) *StudentHandler {
	return &StudentHandler{studentRepo: studentRepo, collectionSvc: collectionSvc, balanceSvc: balanceSvc}
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, students)
}

type balanceResponse struct {
	StudentID int32   `json:"student_id"`
	FeesDue   float64 `json:"fees_due"`
}

// GetBalance returns the stored aggregate; ?resync=true recomputes it from
// the ledger first.
func (h *StudentHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if r.URL.Query().Get("resync") == "true" {
		feesDue, err := h.balanceSvc.Resync(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, balanceResponse{StudentID: id, FeesDue: feesDue})
		return
	}

	student, err := h.studentRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balanceResponse{StudentID: student.ID, FeesDue: student.FeesDue})
}

func (h *StudentHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	cols, err := h.collectionSvc.ListStudentCollections(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cols)
}
