package models

import "time"

// LeaseStatus represents the lifecycle state of a lease agreement.
type LeaseStatus string

const (
	LeaseActive     LeaseStatus = "ACTIVE"
	LeaseExpired    LeaseStatus = "EXPIRED"
	LeaseTerminated LeaseStatus = "TERMINATED"
	LeaseRenewed    LeaseStatus = "RENEWED"
	LeasePending    LeaseStatus = "PENDING"
)

// RequestStatus represents the lifecycle state of a maintenance request.
type RequestStatus string

const (
	RequestPending    RequestStatus = "PENDING"
	RequestInProgress RequestStatus = "IN_PROGRESS"
	RequestCompleted  RequestStatus = "COMPLETED"
	RequestCancelled  RequestStatus = "CANCELLED"
	RequestOnHold     RequestStatus = "ON_HOLD"
)

// Terminal reports whether the request can no longer become overdue.
func (s RequestStatus) Terminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}

// RequestPriority represents the urgency of a maintenance request.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "LOW"
	PriorityMedium RequestPriority = "MEDIUM"
	PriorityHigh   RequestPriority = "HIGH"
	PriorityUrgent RequestPriority = "URGENT"
)

// RiskLevel classifies a tenant's payment/renewal risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

type PropertyRecord struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	PropertyType  string    `json:"property_type"`
	TotalUnits    int       `json:"total_units"`
	OccupiedUnits int       `json:"occupied_units"`
	OccupancyRate *float64  `json:"occupancy_rate"`
	RentalIncome  float64   `json:"rental_income"`
	AssetValue    float64   `json:"asset_value"`
	EsgScore      float64   `json:"esg_score"`
	City          string    `json:"city"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TenantRecord struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PropertyID   int64     `json:"property_id"`
	LeaseStart   time.Time `json:"lease_start"`
	LeaseEnd     time.Time `json:"lease_end"`
	MonthlyRent  float64   `json:"monthly_rent"`
	PaymentScore float64   `json:"payment_score"`
	CreatedAt    time.Time `json:"created_at"`
}

type LeaseRecord struct {
	ID          int64       `json:"id"`
	LeaseNumber string      `json:"lease_number"`
	TenantID    int64       `json:"tenant_id"`
	PropertyID  int64       `json:"property_id"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	MonthlyRent float64     `json:"monthly_rent"`
	Status      LeaseStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

type MaintenanceRequestRecord struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	PropertyID    int64           `json:"property_id"`
	Status        RequestStatus   `json:"status"`
	Priority      RequestPriority `json:"priority"`
	EstimatedCost *float64        `json:"estimated_cost"`
	ActualCost    *float64        `json:"actual_cost"`
	ScheduledDate *time.Time      `json:"scheduled_date"`
	CompletedDate *time.Time      `json:"completed_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
