package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"schoolfees-backend/internal/events"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
	"schoolfees-backend/internal/service"
)

// validate checks request payloads before they reach the services.
var validate = validator.New(validator.WithRequiredStructEnabled())

// NewRouter wires every ledger endpoint onto a mux router.
func NewRouter(
	collectionSvc service.CollectionService,
	discountSvc service.DiscountService,
	catalogSvc service.CatalogService,
	balanceSvc service.BalanceService,
	studentRepo repository.StudentRepository,
	bus *events.Bus,
) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	ch := NewCollectionHandler(collectionSvc)
	api.HandleFunc("/collections", ch.List).Methods("GET")
	api.HandleFunc("/collections", ch.RecordPayment).Methods("POST")
	api.HandleFunc("/collections/{serial}", ch.Get).Methods("GET")
	api.HandleFunc("/collections/{serial}", ch.Update).Methods("PATCH")
	api.HandleFunc("/collections/{serial}", ch.Delete).Methods("DELETE")

	dh := NewDiscountHandler(discountSvc)
	api.HandleFunc("/discounts", dh.List).Methods("GET")
	api.HandleFunc("/discounts", dh.Create).Methods("POST")
	api.HandleFunc("/discounts/{id}", dh.Update).Methods("PATCH")
	api.HandleFunc("/discounts/{id}", dh.Delete).Methods("DELETE")

	fh := NewCatalogHandler(catalogSvc)
	api.HandleFunc("/fee-types", fh.ListFeeTypes).Methods("GET")
	api.HandleFunc("/fee-types", fh.CreateFeeType).Methods("POST")
	api.HandleFunc("/fee-types/{id}", fh.UpdateFeeType).Methods("PATCH")
	api.HandleFunc("/fee-types/{id}", fh.DeleteFeeType).Methods("DELETE")
	api.HandleFunc("/fees", fh.ListFeeLabels).Methods("GET")
	api.HandleFunc("/fees", fh.CreateFeeLabel).Methods("POST")
	api.HandleFunc("/fees/{id}", fh.DeleteFeeLabel).Methods("DELETE")

	sh := NewStudentHandler(studentRepo, collectionSvc, balanceSvc)
	api.HandleFunc("/students", sh.List).Methods("GET")
	api.HandleFunc("/students/{id}/balance", sh.GetBalance).Methods("GET")
	api.HandleFunc("/students/{id}/collections", sh.ListCollections).Methods("GET")

	eh := NewEventsHandler(bus)
	api.HandleFunc("/events", eh.Stream).Methods("GET")

	return router
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondError maps engine errors onto HTTP statuses: validation and
// not-offered are the caller's problem, not-found is a stale view, ambiguity
// is a conflict, anything else is a server failure.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrNotOffered):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAmbiguousDiscount):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	respondJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}

func decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(service.ErrValidation, err)
	}
	if err := validate.Struct(v); err != nil {
		return errors.Join(service.ErrValidation, err)
	}
	return nil
}
