package cache

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"estatepulse/server/internal/analytics"
	"estatepulse/server/internal/models"
)

func TestSnapshotCache_GetSet(t *testing.T) {
	c := NewSnapshotCache(logrus.New())

	_, ok := c.Get("missing")
	assert.False(t, ok)

	snapshot := &models.KpiSnapshot{TotalProperties: 3}
	c.Set("key", snapshot)

	cached, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, snapshot, cached)
	assert.Equal(t, 1, c.Len())
}

func TestSnapshotCache_Invalidate(t *testing.T) {
	c := NewSnapshotCache(nil)
	c.Set("a", &models.KpiSnapshot{})
	c.Set("b", &models.KpiSnapshot{})
	assert.Equal(t, 2, c.Len())

	c.Invalidate()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestFingerprint(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	input := analytics.PortfolioInput{
		Properties: []models.PropertyRecord{{ID: 1, UpdatedAt: created}},
		Requests:   []models.MaintenanceRequestRecord{{ID: 1, CreatedAt: created, Status: models.RequestPending}},
	}

	base := Fingerprint(input, "limit=5")

	// Deterministic for identical input.
	assert.Equal(t, base, Fingerprint(input, "limit=5"))

	// Different parameters change the key.
	assert.NotEqual(t, base, Fingerprint(input, "limit=10"))

	// A record update changes the key.
	input.Properties[0].UpdatedAt = created.Add(time.Hour)
	assert.NotEqual(t, base, Fingerprint(input, "limit=5"))

	// A status change on an otherwise identical request changes the key.
	input.Properties[0].UpdatedAt = created
	input.Requests[0].Status = models.RequestCompleted
	assert.NotEqual(t, base, Fingerprint(input, "limit=5"))
}
