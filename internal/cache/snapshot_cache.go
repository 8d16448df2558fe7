package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"estatepulse/server/internal/analytics"
	"estatepulse/server/internal/models"
)

// SnapshotCache stores computed KPI snapshots keyed by a content fingerprint
// of the input record set plus request parameters. Because the key changes
// whenever the underlying records change, stale entries are never served;
// Invalidate exists for callers that want to drop everything eagerly, e.g.
// after a bulk import.
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]*models.KpiSnapshot
	logger  *logrus.Logger
}

func NewSnapshotCache(logger *logrus.Logger) *SnapshotCache {
	if logger == nil {
		logger = logrus.New()
	}
	return &SnapshotCache{
		entries: make(map[string]*models.KpiSnapshot),
		logger:  logger,
	}
}

// Get returns the cached snapshot for the key, if any.
func (c *SnapshotCache) Get(key string) (*models.KpiSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.entries[key]
	return snapshot, ok
}

// Set stores a snapshot under the key.
func (c *SnapshotCache) Set(key string, snapshot *models.KpiSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = snapshot
	c.logger.WithField("cache_size", len(c.entries)).Debug("Stored KPI snapshot")
}

// Invalidate drops every cached snapshot.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*models.KpiSnapshot)
	c.logger.Debug("Invalidated KPI snapshot cache")
}

// Len returns the number of cached snapshots.
func (c *SnapshotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Fingerprint derives the cache key from the identity and update stamps of
// every record in the input plus the request parameters. Any change to the
// record set or the parameters yields a different key.
func Fingerprint(input analytics.PortfolioInput, params string) string {
	var b strings.Builder
	b.WriteString(params)
	for _, p := range input.Properties {
		fmt.Fprintf(&b, "|p%d@%d", p.ID, p.UpdatedAt.UnixNano())
	}
	for _, t := range input.Tenants {
		fmt.Fprintf(&b, "|t%d@%d", t.ID, t.CreatedAt.UnixNano())
	}
	for _, l := range input.Leases {
		fmt.Fprintf(&b, "|l%d@%d", l.ID, l.CreatedAt.UnixNano())
	}
	for _, r := range input.Requests {
		fmt.Fprintf(&b, "|m%d@%d:%s", r.ID, r.CreatedAt.UnixNano(), r.Status)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
