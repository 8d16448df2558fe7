package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"estatepulse/server/internal/models"
)

const (
	dateFormat     = "2006-01-02"
	datetimeFormat = time.RFC3339
)

type Database struct {
	db *sql.DB
}

// Filter narrows the record listings. Zero values mean no filtering on that
// dimension. Dates are inclusive and formatted as 2006-01-02.
type Filter struct {
	City       string
	PropertyID int64
	StartDate  string
	EndDate    string
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// ListProperties returns property records, optionally filtered by city and
// creation date range.
func (d *Database) ListProperties(filter Filter) ([]models.PropertyRecord, error) {
	query := `
        SELECT
            id, name, address, property_type,
            COALESCE(total_units, 0), COALESCE(occupied_units, 0),
            occupancy_rate,
            COALESCE(rental_income, 0), COALESCE(asset_value, 0), COALESCE(esg_score, 0),
            COALESCE(city, ''), latitude, longitude,
            COALESCE(created_at, ''), COALESCE(updated_at, '')
        FROM properties
        WHERE (? = '' OR LOWER(city) = LOWER(?))
        AND (? = '' OR substr(created_at, 1, 10) >= ?)
        AND (? = '' OR substr(created_at, 1, 10) <= ?)
        ORDER BY id
    `
	rows, err := d.db.Query(query,
		filter.City, filter.City,
		filter.StartDate, filter.StartDate,
		filter.EndDate, filter.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var properties []models.PropertyRecord
	for rows.Next() {
		var p models.PropertyRecord
		var name, address, propertyType sql.NullString
		var occupancyRate, latitude, longitude sql.NullFloat64
		var createdAt, updatedAt string

		err := rows.Scan(
			&p.ID, &name, &address, &propertyType,
			&p.TotalUnits, &p.OccupiedUnits,
			&occupancyRate,
			&p.RentalIncome, &p.AssetValue, &p.EsgScore,
			&p.City, &latitude, &longitude,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}

		if name.Valid {
			p.Name = name.String
		}
		if address.Valid {
			p.Address = address.String
		}
		if propertyType.Valid {
			p.PropertyType = propertyType.String
		}
		if occupancyRate.Valid {
			rate := occupancyRate.Float64
			p.OccupancyRate = &rate
		}
		if latitude.Valid {
			lat := latitude.Float64
			p.Latitude = &lat
		}
		if longitude.Valid {
			lon := longitude.Float64
			p.Longitude = &lon
		}
		p.CreatedAt = parseTimestamp(createdAt)
		p.UpdatedAt = parseTimestamp(updatedAt)

		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// ListTenants returns tenant records, optionally filtered by property.
func (d *Database) ListTenants(filter Filter) ([]models.TenantRecord, error) {
	query := `
        SELECT
            id, name, COALESCE(email, ''), property_id,
            COALESCE(lease_start, ''), COALESCE(lease_end, ''),
            COALESCE(monthly_rent, 0), COALESCE(payment_score, 0),
            COALESCE(created_at, '')
        FROM tenants
        WHERE (? = 0 OR property_id = ?)
        ORDER BY id
    `
	rows, err := d.db.Query(query, filter.PropertyID, filter.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []models.TenantRecord
	for rows.Next() {
		var t models.TenantRecord
		var leaseStart, leaseEnd, createdAt string
		err := rows.Scan(
			&t.ID, &t.Name, &t.Email, &t.PropertyID,
			&leaseStart, &leaseEnd,
			&t.MonthlyRent, &t.PaymentScore,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		t.LeaseStart = parseDate(leaseStart)
		t.LeaseEnd = parseDate(leaseEnd)
		t.CreatedAt = parseTimestamp(createdAt)
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// ListLeases returns lease records, optionally filtered by property and
// start-date range.
func (d *Database) ListLeases(filter Filter) ([]models.LeaseRecord, error) {
	query := `
        SELECT
            id, COALESCE(lease_number, ''), tenant_id, property_id,
            start_date, end_date,
            COALESCE(monthly_rent, 0), COALESCE(status, 'ACTIVE'),
            COALESCE(created_at, '')
        FROM leases
        WHERE (? = 0 OR property_id = ?)
        AND (? = '' OR start_date >= ?)
        AND (? = '' OR start_date <= ?)
        ORDER BY id
    `
	rows, err := d.db.Query(query,
		filter.PropertyID, filter.PropertyID,
		filter.StartDate, filter.StartDate,
		filter.EndDate, filter.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query leases: %w", err)
	}
	defer rows.Close()

	var leases []models.LeaseRecord
	for rows.Next() {
		var l models.LeaseRecord
		var startDate, endDate, status, createdAt string
		err := rows.Scan(
			&l.ID, &l.LeaseNumber, &l.TenantID, &l.PropertyID,
			&startDate, &endDate,
			&l.MonthlyRent, &status,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lease: %w", err)
		}
		l.StartDate = parseDate(startDate)
		l.EndDate = parseDate(endDate)
		l.Status = models.LeaseStatus(status)
		l.CreatedAt = parseTimestamp(createdAt)
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

// ListMaintenanceRequests returns maintenance request records, optionally
// filtered by property and creation date range.
func (d *Database) ListMaintenanceRequests(filter Filter) ([]models.MaintenanceRequestRecord, error) {
	query := `
        SELECT
            id, COALESCE(title, ''), property_id,
            COALESCE(status, 'PENDING'), COALESCE(priority, 'MEDIUM'),
            estimated_cost, actual_cost,
            scheduled_date, completed_date,
            COALESCE(created_at, '')
        FROM maintenance_requests
        WHERE (? = 0 OR property_id = ?)
        AND (? = '' OR substr(created_at, 1, 10) >= ?)
        AND (? = '' OR substr(created_at, 1, 10) <= ?)
        ORDER BY id
    `
	rows, err := d.db.Query(query,
		filter.PropertyID, filter.PropertyID,
		filter.StartDate, filter.StartDate,
		filter.EndDate, filter.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance requests: %w", err)
	}
	defer rows.Close()

	var requests []models.MaintenanceRequestRecord
	for rows.Next() {
		var r models.MaintenanceRequestRecord
		var status, priority, createdAt string
		var estimatedCost, actualCost sql.NullFloat64
		var scheduledDate, completedDate sql.NullString
		err := rows.Scan(
			&r.ID, &r.Title, &r.PropertyID,
			&status, &priority,
			&estimatedCost, &actualCost,
			&scheduledDate, &completedDate,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance request: %w", err)
		}
		r.Status = models.RequestStatus(status)
		r.Priority = models.RequestPriority(priority)
		if estimatedCost.Valid {
			cost := estimatedCost.Float64
			r.EstimatedCost = &cost
		}
		if actualCost.Valid {
			cost := actualCost.Float64
			r.ActualCost = &cost
		}
		if scheduledDate.Valid && scheduledDate.String != "" {
			ts := parseTimestamp(scheduledDate.String)
			r.ScheduledDate = &ts
		}
		if completedDate.Valid && completedDate.String != "" {
			ts := parseTimestamp(completedDate.String)
			r.CompletedDate = &ts
		}
		r.CreatedAt = parseTimestamp(createdAt)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(dateFormat, s); err == nil {
		return t
	}
	return parseTimestamp(s)
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(datetimeFormat, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(dateFormat, s); err == nil {
		return t
	}
	return time.Time{}
}
