//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"carbroker/internal/core"
	"carbroker/internal/repository"
)

// Broker is the transaction core as the HTTP layer sees it.
type Broker interface {
	CreateOrder(ctx context.Context, p core.Principal, input core.CreateOrderInput) (*repository.Order, error)
	UpdateOrder(ctx context.Context, p core.Principal, orderID string, input core.UpdateOrderInput) (*repository.Order, error)
	AssignOrderToDriver(ctx context.Context, p core.Principal, orderID, driverID string) (*repository.Order, error)
	AcceptOrder(ctx context.Context, p core.Principal, orderID string) (*repository.Order, error)
	RejectOrder(ctx context.Context, p core.Principal, orderID string) (*repository.Order, error)
	UpdateOrderStatus(ctx context.Context, p core.Principal, orderID string, status repository.OrderStatus) (*repository.Order, error)
	DeleteOrder(ctx context.Context, p core.Principal, orderID string) (bool, error)
	GetOrder(ctx context.Context, p core.Principal, orderID string) (*repository.Order, error)
	ListOrders(ctx context.Context, p core.Principal) ([]*repository.Order, error)

	CreateAuction(ctx context.Context, p core.Principal, input core.CreateAuctionInput) (*repository.Auction, error)
	PurchaseAuction(ctx context.Context, p core.Principal, auctionID string) (*core.PurchaseResult, error)
	UpdateAuctionStatus(ctx context.Context, p core.Principal, auctionID string, status repository.AuctionStatus) (*repository.Auction, error)
	DeleteAuction(ctx context.Context, p core.Principal, auctionID string) (bool, error)
	ListActiveAuctions(ctx context.Context, p core.Principal) ([]*repository.Auction, error)

	CreateCompletionBilling(ctx context.Context, p core.Principal, orderID, driverID string, amount decimal.Decimal) (*repository.Billing, error)
	UpdateBillingStatus(ctx context.Context, p core.Principal, billingID string, input core.UpdateBillingStatusInput) (*repository.Billing, error)
	GetCompletedOrdersForBilling(ctx context.Context, p core.Principal) ([]*repository.Order, error)
	ListBillings(ctx context.Context, p core.Principal) ([]*repository.Billing, error)

	CreateVehicleHandover(ctx context.Context, p core.Principal, input core.CreateHandoverInput) (*repository.VehicleHandover, error)
	ListHandovers(ctx context.Context, p core.Principal, orderID string) ([]*repository.VehicleHandover, error)

	DecideApproval(ctx context.Context, p core.Principal, approvalID string, accept bool) (*repository.OrderApproval, error)

	CreateUser(ctx context.Context, p core.Principal, input core.CreateUserInput) (*repository.User, error)
	UpdateUserStatus(ctx context.Context, p core.Principal, userID string, status repository.UserStatus) error
}

// UserResolver authenticates basic-auth credentials.
type UserResolver interface {
	ValidateUser(ctx context.Context, email, password string) (*repository.User, error)
}

type Server struct {
	broker       Broker
	users        UserResolver
	server       *http.Server
	logger       *zap.Logger
	AuditManager *AuditManager
}

func New(broker Broker, users UserResolver, auditManager *AuditManager, logger *zap.Logger) *Server {
	return &Server{
		broker:       broker,
		users:        users,
		AuditManager: auditManager,
		logger:       logger,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/").Subrouter()
	api.Use(s.basicAuthMiddleware, s.auditLogMiddleware)

	api.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.handleUpdateOrder).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id}", s.handleDeleteOrder).Methods(http.MethodDelete)
	api.HandleFunc("/orders/{id}/assign", s.handleAssignOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/accept", s.handleAcceptOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/reject", s.handleRejectOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/status", s.handleUpdateOrderStatus).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id}/handovers", s.handleListHandovers).Methods(http.MethodGet)

	api.HandleFunc("/auctions", s.handleCreateAuction).Methods(http.MethodPost)
	api.HandleFunc("/auctions", s.handleListAuctions).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{id}", s.handleDeleteAuction).Methods(http.MethodDelete)
	api.HandleFunc("/auctions/{id}/purchase", s.handlePurchaseAuction).Methods(http.MethodPost)
	api.HandleFunc("/auctions/{id}/status", s.handleUpdateAuctionStatus).Methods(http.MethodPut)

	api.HandleFunc("/billings", s.handleListBillings).Methods(http.MethodGet)
	api.HandleFunc("/billings/completion", s.handleCreateCompletionBilling).Methods(http.MethodPost)
	api.HandleFunc("/billings/completed-orders", s.handleCompletedOrdersForBilling).Methods(http.MethodGet)
	api.HandleFunc("/billings/{id}/status", s.handleUpdateBillingStatus).Methods(http.MethodPut)

	api.HandleFunc("/handovers", s.handleCreateHandover).Methods(http.MethodPost)

	api.HandleFunc("/approvals/{id}/decide", s.handleDecideApproval).Methods(http.MethodPost)

	api.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/status", s.handleUpdateUserStatus).Methods(http.MethodPut)

	return router
}

type contextKey string

const principalKey contextKey = "principal"

func principalFrom(ctx context.Context) core.Principal {
	p, _ := ctx.Value(principalKey).(core.Principal)
	return p
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := s.users.ValidateUser(r.Context(), email, password)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		p := core.Principal{UserID: user.ID, Role: user.Role, Status: user.Status}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondCoreError translates the core's error taxonomy to status codes.
// Not-available deliberately shares 404 with not-found; the message keeps
// them apart for the caller.
func (s *Server) respondCoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrNotAvailable):
		respondError(w, http.StatusNotFound, "auction not available")
	case errors.Is(err, core.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
