package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"carbroker/internal/core"
	"carbroker/internal/repository"
)

func (s *Server) handleCreateCompletionBilling(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID  string `json:"order_id"`
		DriverID string `json:"driver_id"`
		Amount   string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" || req.DriverID == "" {
		respondError(w, http.StatusBadRequest, "Missing order_id or driver_id")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	billing, err := s.broker.CreateCompletionBilling(r.Context(), principalFrom(r.Context()),
		req.OrderID, req.DriverID, amount)
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, billing)
}

func (s *Server) handleUpdateBillingStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status     string  `json:"status"`
		AdminNotes *string `json:"admin_notes,omitempty"`
		NewAmount  *string `json:"new_amount,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Missing status")
		return
	}

	input := core.UpdateBillingStatusInput{
		Status:     repository.BillingStatus(req.Status),
		AdminNotes: req.AdminNotes,
	}
	if req.NewAmount != nil {
		amount, err := decimal.NewFromString(*req.NewAmount)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid new_amount")
			return
		}
		input.NewAmount = &amount
	}

	billing, err := s.broker.UpdateBillingStatus(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"], input)
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, billing)
}

func (s *Server) handleCompletedOrdersForBilling(w http.ResponseWriter, r *http.Request) {
	orders, err := s.broker.GetCompletedOrdersForBilling(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleListBillings(w http.ResponseWriter, r *http.Request) {
	billings, err := s.broker.ListBillings(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, billings)
}

func (s *Server) handleCreateHandover(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID     string   `json:"order_id"`
		Type        string   `json:"type"`
		KmReading   int      `json:"km_reading"`
		FuelLevel   string   `json:"fuel_level"`
		Condition   string   `json:"condition"`
		DamageNotes *string  `json:"damage_notes,omitempty"`
		Photos      []string `json:"photos,omitempty"`
		Signature   *string  `json:"signature,omitempty"`
		Location    string   `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" || req.Type == "" {
		respondError(w, http.StatusBadRequest, "Missing order_id or type")
		return
	}

	handover, err := s.broker.CreateVehicleHandover(r.Context(), principalFrom(r.Context()), core.CreateHandoverInput{
		OrderID:     req.OrderID,
		Type:        repository.HandoverType(req.Type),
		KmReading:   req.KmReading,
		FuelLevel:   req.FuelLevel,
		Condition:   req.Condition,
		DamageNotes: req.DamageNotes,
		Photos:      req.Photos,
		Signature:   req.Signature,
		Location:    req.Location,
	})
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, handover)
}

func (s *Server) handleListHandovers(w http.ResponseWriter, r *http.Request) {
	handovers, err := s.broker.ListHandovers(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, handovers)
}

func (s *Server) handleDecideApproval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	approval, err := s.broker.DecideApproval(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"], req.Accept)
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, approval)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Status   string `json:"status,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.broker.CreateUser(r.Context(), principalFrom(r.Context()), core.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     repository.Role(req.Role),
		Status:   repository.UserStatus(req.Status),
	})
	if err != nil {
		s.respondCoreError(w, err)
		return
	}
	user.Password = ""
	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Missing status")
		return
	}

	if err := s.broker.UpdateUserStatus(r.Context(), principalFrom(r.Context()),
		mux.Vars(r)["id"], repository.UserStatus(req.Status)); err != nil {
		s.respondCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "User status updated"})
}
