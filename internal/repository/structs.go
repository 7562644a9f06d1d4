package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrObjectNotFound = errors.New("not found")
	ErrDuplicate      = errors.New("duplicate row")
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDisponent Role = "disponent"
	RoleDriver    Role = "driver"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

type OrderStatus string

const (
	OrderStatusOpen       OrderStatus = "open"
	OrderStatusAssigned   OrderStatus = "assigned"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type AuctionStatus string

const (
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusSold      AuctionStatus = "sold"
	AuctionStatusCancelled AuctionStatus = "cancelled"
)

type BillingType string

const (
	BillingTypeOrderPayment      BillingType = "order_payment"
	BillingTypeCancellationFee   BillingType = "cancellation_fee"
	BillingTypeCredit            BillingType = "credit"
	BillingTypeDebit             BillingType = "debit"
	BillingTypeCompletionPayment BillingType = "completion_payment"
)

type BillingStatus string

const (
	BillingStatusPending   BillingStatus = "pending"
	BillingStatusApproved  BillingStatus = "approved"
	BillingStatusRejected  BillingStatus = "rejected"
	BillingStatusPaid      BillingStatus = "paid"
	BillingStatusCancelled BillingStatus = "cancelled"
)

type HandoverType string

const (
	HandoverTypePickup   HandoverType = "pickup"
	HandoverTypeDelivery HandoverType = "delivery"
)

type ApprovalKind string

const (
	ApprovalKindAssignment           ApprovalKind = "assignment"
	ApprovalKindPurchaseConfirmation ApprovalKind = "purchase_confirmation"
	ApprovalKindPriceAdjustment      ApprovalKind = "price_adjustment"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusAccepted ApprovalStatus = "accepted"
	ApprovalStatusRejected ApprovalStatus = "rejected"
	ApprovalStatusExpired  ApprovalStatus = "expired"
)

type User struct {
	ID        string     `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Name      string     `db:"name" json:"name"`
	Password  string     `db:"password" json:"-"`
	Role      Role       `db:"role" json:"role"`
	Status    UserStatus `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

type Order struct {
	ID               string          `db:"id" json:"id"`
	PickupLocation   string          `db:"pickup_location" json:"pickup_location"`
	DeliveryLocation string          `db:"delivery_location" json:"delivery_location"`
	VehicleBrand     string          `db:"vehicle_brand" json:"vehicle_brand"`
	VehicleModel     string          `db:"vehicle_model" json:"vehicle_model"`
	VehicleYear      *int            `db:"vehicle_year" json:"vehicle_year"`
	PickupDate       time.Time       `db:"pickup_date" json:"pickup_date"`
	DeliveryDate     *time.Time      `db:"delivery_date" json:"delivery_date"`
	PickupTimeFrom   *string         `db:"pickup_time_from" json:"pickup_time_from"`
	PickupTimeTo     *string         `db:"pickup_time_to" json:"pickup_time_to"`
	DeliveryTimeFrom *string         `db:"delivery_time_from" json:"delivery_time_from"`
	DeliveryTimeTo   *string         `db:"delivery_time_to" json:"delivery_time_to"`
	Price            decimal.Decimal `db:"price" json:"price"`
	DistanceKm       *float64        `db:"distance_km" json:"distance_km"`
	Notes            *string         `db:"notes" json:"notes"`
	Status           OrderStatus     `db:"status" json:"status"`
	AssignedDriverID *string         `db:"assigned_driver_id" json:"assigned_driver_id"`
	CreatedByID      string          `db:"created_by_id" json:"created_by_id"`
	FromAuction      bool            `db:"from_auction" json:"from_auction"`
	AuctionID        *string         `db:"auction_id" json:"auction_id"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

type Auction struct {
	ID               string          `db:"id" json:"id"`
	PickupLocation   string          `db:"pickup_location" json:"pickup_location"`
	DeliveryLocation string          `db:"delivery_location" json:"delivery_location"`
	VehicleBrand     string          `db:"vehicle_brand" json:"vehicle_brand"`
	VehicleModel     string          `db:"vehicle_model" json:"vehicle_model"`
	VehicleYear      *int            `db:"vehicle_year" json:"vehicle_year"`
	PickupDate       time.Time       `db:"pickup_date" json:"pickup_date"`
	DeliveryDate     *time.Time      `db:"delivery_date" json:"delivery_date"`
	PickupTimeFrom   string          `db:"pickup_time_from" json:"pickup_time_from"`
	PickupTimeTo     string          `db:"pickup_time_to" json:"pickup_time_to"`
	DeliveryTimeFrom string          `db:"delivery_time_from" json:"delivery_time_from"`
	DeliveryTimeTo   string          `db:"delivery_time_to" json:"delivery_time_to"`
	InstantPrice     decimal.Decimal `db:"instant_price" json:"instant_price"`
	DistanceKm       *float64        `db:"distance_km" json:"distance_km"`
	Notes            *string         `db:"notes" json:"notes"`
	Status           AuctionStatus   `db:"status" json:"status"`
	PurchasedByID    *string         `db:"purchased_by_id" json:"purchased_by_id"`
	PurchasedAt      *time.Time      `db:"purchased_at" json:"purchased_at"`
	CreatedByID      string          `db:"created_by_id" json:"created_by_id"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

type Billing struct {
	ID             string              `db:"id" json:"id"`
	UserID         string              `db:"user_id" json:"user_id"`
	OrderID        *string             `db:"order_id" json:"order_id"`
	AuctionID      *string             `db:"auction_id" json:"auction_id"`
	Amount         decimal.Decimal     `db:"amount" json:"amount"`
	OriginalAmount decimal.NullDecimal `db:"original_amount" json:"original_amount"`
	Type           BillingType         `db:"type" json:"type"`
	Status         BillingStatus       `db:"status" json:"status"`
	Description    string              `db:"description" json:"description"`
	AdminNotes     *string             `db:"admin_notes" json:"admin_notes"`
	ApprovedBy     *string             `db:"approved_by" json:"approved_by"`
	ApprovedAt     *time.Time          `db:"approved_at" json:"approved_at"`
	CreatedByID    string              `db:"created_by_id" json:"created_by_id"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updated_at"`
}

type VehicleHandover struct {
	ID          string          `db:"id" json:"id"`
	OrderID     string          `db:"order_id" json:"order_id"`
	DriverID    string          `db:"driver_id" json:"driver_id"`
	Type        HandoverType    `db:"type" json:"type"`
	KmReading   int             `db:"km_reading" json:"km_reading"`
	FuelLevel   string          `db:"fuel_level" json:"fuel_level"`
	Condition   string          `db:"condition" json:"condition"`
	DamageNotes *string         `db:"damage_notes" json:"damage_notes"`
	Photos      json.RawMessage `db:"photos" json:"photos"`
	Signature   *string         `db:"signature" json:"signature"`
	Location    string          `db:"location" json:"location"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type OrderApproval struct {
	ID             string              `db:"id" json:"id"`
	OrderID        string              `db:"order_id" json:"order_id"`
	RequestedBy    string              `db:"requested_by" json:"requested_by"`
	Kind           ApprovalKind        `db:"kind" json:"kind"`
	ProposedAmount decimal.NullDecimal `db:"proposed_amount" json:"proposed_amount"`
	Status         ApprovalStatus      `db:"status" json:"status"`
	ExpiresAt      time.Time           `db:"expires_at" json:"expires_at"`
	DecidedBy      *string             `db:"decided_by" json:"decided_by"`
	DecidedAt      *time.Time          `db:"decided_at" json:"decided_at"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
}

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Status      TaskStatus      `db:"status" json:"status"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	Topic       string          `db:"topic" json:"topic"`
	Attempts    int             `db:"attempts" json:"attempts"`
	LastError   *string         `db:"last_error" json:"last_error"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at" json:"completed_at"`
}

type AuditLogPayload struct {
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Handler    string    `json:"handler"`
	StatusCode int       `json:"status_code"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	EntityType string    `json:"entity_type,omitempty"`
}
