package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/orderflow/delivery-system/delivery-service/application"
	"github.com/orderflow/delivery-system/delivery-service/domain"
)

// DeliveryHandlers contains delivery HTTP handlers
type DeliveryHandlers struct {
	requestDelivery *application.RequestDelivery
	getDelivery     *application.GetDelivery
}

// NewDeliveryHandlers creates new delivery handlers
func NewDeliveryHandlers(
	requestDelivery *application.RequestDelivery,
	getDelivery *application.GetDelivery,
) *DeliveryHandlers {
	return &DeliveryHandlers{
		requestDelivery: requestDelivery,
		getDelivery:     getDelivery,
	}
}

// RegisterRoutes registers delivery routes
func (h *DeliveryHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/deliveries", h.RequestDelivery)
	r.Get("/deliveries/{id}", h.GetDelivery)
}

// RequestDelivery enqueues a delivery request. The response is an accepted
// correlation id; the outcome is observed through the confirmation and
// rollback events, not synchronously.
func (h *DeliveryHandlers) RequestDelivery(w http.ResponseWriter, r *http.Request) {
	var request domain.DeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	correlationID, err := h.requestDelivery.Execute(r.Context(), request)
	if err != nil {
		if request.Validate() != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"correlation_id": correlationID.String(),
	})
}

// GetDelivery returns one ledger record by id
func (h *DeliveryHandlers) GetDelivery(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Delivery ID must be an integer", http.StatusBadRequest)
		return
	}

	record, err := h.getDelivery.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDeliveryNotFound) {
			http.Error(w, "Delivery not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}
