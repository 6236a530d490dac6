package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/port/http/middleware"
	"github.com/plantnet/server/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderHandler struct {
	orders *service.OrderService
	log    logger.Logger
}

func NewOrderHandler(orders *service.OrderService, log logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log.With("handler", "orders")}
}

func orderIDParam(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
}

// Checkout handles POST /orders. Stock adjustment is a separate
// PATCH /plants/quantity call made by the client; the two are not atomic.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	var order entity.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.orders.Checkout(r.Context(), &order, email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": id.Hex()})
}

// ListForCustomer handles GET /orders/{email}: the buyer's orders joined
// with plant display fields.
func (h *OrderHandler) ListForCustomer(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	views, err := h.orders.ListForCustomer(r.Context(), email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if views == nil {
		views = []entity.OrderView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// ListForSeller handles GET /orders/seller/{email}.
func (h *OrderHandler) ListForSeller(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	views, err := h.orders.ListForSeller(r.Context(), email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if views == nil {
		views = []entity.OrderView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// UpdateStatus handles PATCH /orders/seller/{id}.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	id, err := orderIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req struct {
		Status entity.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, req.Status, email); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CancelBySeller handles DELETE /orders/seller/{id}: unconditional.
func (h *OrderHandler) CancelBySeller(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	id, err := orderIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orders.CancelBySeller(r.Context(), id, email); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CancelByCustomer handles DELETE /orders/{id}: rejected with a conflict
// once the order is delivered.
func (h *OrderHandler) CancelByCustomer(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.ClaimEmail(r.Context())

	id, err := orderIDParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orders.CancelByCustomer(r.Context(), id, email); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
