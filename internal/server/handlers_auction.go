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

type auctionRequest struct {
	PickupLocation   string   `json:"pickup_location"`
	DeliveryLocation string   `json:"delivery_location"`
	VehicleBrand     string   `json:"vehicle_brand"`
	VehicleModel     string   `json:"vehicle_model"`
	VehicleYear      *int     `json:"vehicle_year,omitempty"`
	PickupDate       string   `json:"pickup_date"`
	DeliveryDate     *string  `json:"delivery_date,omitempty"`
	PickupTimeFrom   string   `json:"pickup_time_from"`
	PickupTimeTo     string   `json:"pickup_time_to"`
	DeliveryTimeFrom string   `json:"delivery_time_from"`
	DeliveryTimeTo   string   `json:"delivery_time_to"`
	InstantPrice     string   `json:"instant_price"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

func (s *Server) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	var req auctionRequest
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
	price, err := decimal.NewFromString(req.InstantPrice)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid instant_price")
		return
	}

	auction, err := s.broker.CreateAuction(r.Context(), principalFrom(r.Context()), core.CreateAuctionInput{
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
		InstantPrice:     price,
		DistanceKm:       req.DistanceKm,
		Notes:            req.Notes,
	})
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, auction)
}

func (s *Server) handleListAuctions(w http.ResponseWriter, r *http.Request) {
	auctions, err := s.broker.ListActiveAuctions(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, auctions)
}

func (s *Server) handlePurchaseAuction(w http.ResponseWriter, r *http.Request) {
	result, err := s.broker.PurchaseAuction(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"auction": result.Auction,
		"order":   result.Order,
	})
}

func (s *Server) handleUpdateAuctionStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Missing status")
		return
	}

	auction, err := s.broker.UpdateAuctionStatus(r.Context(), principalFrom(r.Context()),
		mux.Vars(r)["id"], repository.AuctionStatus(req.Status))
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, auction)
}

func (s *Server) handleDeleteAuction(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.broker.DeleteAuction(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
