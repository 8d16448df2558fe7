package ingest

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"estatepulse/server/config"
	"estatepulse/server/internal/database"
	"estatepulse/server/internal/models"
)

// TxRunner is the part of *gorm.DB the processor needs; tests substitute a
// mock.
type TxRunner interface {
	Transaction(fc func(*gorm.DB) error, opts ...*sql.TxOptions) error
}

// ImportProcessor drains record batches from the queue into the database,
// retrying failed batches per the configuration.
type ImportProcessor struct {
	db     TxRunner
	logger *logrus.Logger
	config *config.Config
	queue  *RecordQueue

	// Invalidate is called after every successfully imported batch so the
	// KPI snapshot cache never serves results computed over stale records.
	Invalidate func()
}

// NewImportProcessor creates a new import processor and subscribes it to the
// queue.
func NewImportProcessor(db TxRunner, queue *RecordQueue, cfg *config.Config, logger *logrus.Logger) *ImportProcessor {
	p := &ImportProcessor{
		db:     db,
		queue:  queue,
		config: cfg,
		logger: logger,
	}
	queue.Subscribe(p.processBatch)
	return p
}

// Start begins draining the queue.
func (p *ImportProcessor) Start() {
	p.queue.Start()
}

// Stop closes the queue; in-flight batches finish their retries.
func (p *ImportProcessor) Stop() {
	p.queue.Close()
}

// processBatch imports a single batch with transaction and retry logic.
func (p *ImportProcessor) processBatch(batch []*models.PropertyRecord) error {
	var err error
	for attempt := 0; attempt <= p.config.BatchImport.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch import, attempt %d of %d", attempt, p.config.BatchImport.MaxRetries)
			time.Sleep(time.Duration(p.config.BatchImport.RetryDelay) * time.Second)
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertProperties(tx, batch); err != nil {
				return fmt.Errorf("failed to upsert property batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully imported batch of %d properties", len(batch))
			if p.Invalidate != nil {
				p.Invalidate()
			}
			return nil
		}

		p.logger.Errorf("Batch import failed: %v", err)
	}

	return fmt.Errorf("failed to import batch after %d attempts: %w", p.config.BatchImport.MaxRetries, err)
}
