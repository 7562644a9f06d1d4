package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"carbroker/internal/core"
	"carbroker/internal/repository"
)

const dateLayout = "2006-01-02"

type orderRequest struct {
	PickupLocation   string   `json:"pickup_location"`
	DeliveryLocation string   `json:"delivery_location"`
	VehicleBrand     string   `json:"vehicle_brand"`
	VehicleModel     string   `json:"vehicle_model"`
	VehicleYear      *int     `json:"vehicle_year,omitempty"`
	PickupDate       string   `json:"pickup_date"`
	DeliveryDate     *string  `json:"delivery_date,omitempty"`
	PickupTimeFrom   *string  `json:"pickup_time_from,omitempty"`
	PickupTimeTo     *string  `json:"pickup_time_to,omitempty"`
	DeliveryTimeFrom *string  `json:"delivery_time_from,omitempty"`
	DeliveryTimeTo   *string  `json:"delivery_time_to,omitempty"`
	Price            string   `json:"price"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

func parseOptionalDate(s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pickupDate, err := time.Parse(dateLayout, req.PickupDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid pickup_date. Use YYYY-MM-DD")
		return
	}
	deliveryDate, ok := parseOptionalDate(req.DeliveryDate)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid delivery_date. Use YYYY-MM-DD")
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid price")
		return
	}

	order, err := s.broker.CreateOrder(r.Context(), principalFrom(r.Context()), core.CreateOrderInput{
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		VehicleBrand:     req.VehicleBrand,
		VehicleModel:     req.VehicleModel,
		VehicleYear:      req.VehicleYear,
		PickupDate:       pickupDate.UTC(),
		DeliveryDate:     deliveryDate,
		PickupTimeFrom:   req.PickupTimeFrom,
		PickupTimeTo:     req.PickupTimeTo,
		DeliveryTimeFrom: req.DeliveryTimeFrom,
		DeliveryTimeTo:   req.DeliveryTimeTo,
		Price:            price,
		DistanceKm:       req.DistanceKm,
		Notes:            req.Notes,
	})
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	order, err := s.broker.GetOrder(r.Context(), principalFrom(r.Context()), orderID)
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.broker.ListOrders(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req struct {
		PickupLocation   *string  `json:"pickup_location,omitempty"`
		DeliveryLocation *string  `json:"delivery_location,omitempty"`
		VehicleBrand     *string  `json:"vehicle_brand,omitempty"`
		VehicleModel     *string  `json:"vehicle_model,omitempty"`
		VehicleYear      *int     `json:"vehicle_year,omitempty"`
		PickupDate       *string  `json:"pickup_date,omitempty"`
		DeliveryDate     *string  `json:"delivery_date,omitempty"`
		Price            *string  `json:"price,omitempty"`
		DistanceKm       *float64 `json:"distance_km,omitempty"`
		Notes            *string  `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := core.UpdateOrderInput{
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		VehicleBrand:     req.VehicleBrand,
		VehicleModel:     req.VehicleModel,
		VehicleYear:      req.VehicleYear,
		DistanceKm:       req.DistanceKm,
		Notes:            req.Notes,
	}
	if req.PickupDate != nil {
		d, ok := parseOptionalDate(req.PickupDate)
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid pickup_date. Use YYYY-MM-DD")
			return
		}
		input.PickupDate = d
	}
	if req.DeliveryDate != nil {
		d, ok := parseOptionalDate(req.DeliveryDate)
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid delivery_date. Use YYYY-MM-DD")
			return
		}
		input.DeliveryDate = d
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid price")
			return
		}
		input.Price = &price
	}

	order, err := s.broker.UpdateOrder(r.Context(), principalFrom(r.Context()), orderID, input)
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleAssignOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req struct {
		DriverID string `json:"driver_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DriverID == "" {
		respondError(w, http.StatusBadRequest, "Missing driver_id")
		return
	}

	order, err := s.broker.AssignOrderToDriver(r.Context(), principalFrom(r.Context()), orderID, req.DriverID)
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleAcceptOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.broker.AcceptOrder(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleRejectOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.broker.RejectOrder(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Missing status")
		return
	}

	order, err := s.broker.UpdateOrderStatus(r.Context(), principalFrom(r.Context()), orderID, repository.OrderStatus(req.Status))
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.broker.DeleteOrder(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
