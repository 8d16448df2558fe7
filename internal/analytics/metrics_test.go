package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"estatepulse/server/internal/models"
)

func TestOccupancyRate(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		occupied int
		expected float64
		wantErr  bool
	}{
		{name: "Fully occupied", total: 10, occupied: 10, expected: 100},
		{name: "Half occupied", total: 10, occupied: 5, expected: 50},
		{name: "Zero units", total: 0, occupied: 0, expected: 0},
		{name: "Rounds to two decimals", total: 3, occupied: 1, expected: 33.33},
		{name: "Rounds half up", total: 800, occupied: 1, expected: 0.13},
		{name: "Seven of twelve", total: 12, occupied: 7, expected: 58.33},
		{name: "Negative total", total: -1, occupied: 0, wantErr: true},
		{name: "Negative occupied", total: 10, occupied: -2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := OccupancyRate(tt.total, tt.occupied)
			if tt.wantErr {
				assert.Error(t, err)
				var invalid *InvalidInputError
				assert.ErrorAs(t, err, &invalid)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, rate)
			assert.GreaterOrEqual(t, rate, 0.0)
			assert.LessOrEqual(t, rate, 100.0)
		})
	}
}

func TestLeaseDaysRemaining(t *testing.T) {
	today := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, 10, LeaseDaysRemaining(today.AddDate(0, 0, 10), today))
	assert.Equal(t, 0, LeaseDaysRemaining(today, today))
	assert.Equal(t, 0, LeaseDaysRemaining(today.AddDate(0, 0, -5), today))
}

func TestIsLeaseActive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		today    time.Time
		expected bool
	}{
		{name: "Before start", today: start.AddDate(0, 0, -1), expected: false},
		{name: "On start date", today: start, expected: true},
		{name: "Mid lease", today: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), expected: true},
		{name: "On end date", today: end, expected: true},
		{name: "After end", today: end.AddDate(0, 0, 1), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLeaseActive(start, end, tt.today))
		})
	}
}

func TestIsMaintenanceOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	tests := []struct {
		name      string
		scheduled *time.Time
		status    models.RequestStatus
		expected  bool
	}{
		{name: "No scheduled date", scheduled: nil, status: models.RequestPending, expected: false},
		{name: "Past and pending", scheduled: &past, status: models.RequestPending, expected: true},
		{name: "Past and in progress", scheduled: &past, status: models.RequestInProgress, expected: true},
		{name: "Past but completed", scheduled: &past, status: models.RequestCompleted, expected: false},
		{name: "Past but cancelled", scheduled: &past, status: models.RequestCancelled, expected: false},
		{name: "Scheduled in future", scheduled: &future, status: models.RequestPending, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMaintenanceOverdue(tt.scheduled, tt.status, now))
		})
	}
}

func TestTenantRiskLevel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		days     int
		expected models.RiskLevel
	}{
		{name: "Low score is high risk", score: 40, days: 300, expected: models.RiskHigh},
		{name: "Imminent expiry is high risk", score: 95, days: 15, expected: models.RiskHigh},
		{name: "Expiry on boundary day 30", score: 95, days: 30, expected: models.RiskHigh},
		{name: "Mid score is medium risk", score: 60, days: 300, expected: models.RiskMedium},
		{name: "Near expiry is medium risk", score: 95, days: 45, expected: models.RiskMedium},
		{name: "Expiry on boundary day 60", score: 95, days: 60, expected: models.RiskMedium},
		{name: "Good score and far expiry", score: 90, days: 300, expected: models.RiskLow},
		{name: "Already expired lease does not raise risk", score: 90, days: -5, expected: models.RiskLow},
		{name: "Expiry raises a medium score", score: 60, days: 15, expected: models.RiskHigh},
		{name: "Expiry never lowers a high score", score: 40, days: 45, expected: models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TenantRiskLevel(tt.score, tt.days))
		})
	}
}
