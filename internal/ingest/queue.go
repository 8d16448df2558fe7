package ingest

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"estatepulse/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// RecordQueue is an in-memory queue for batches of imported property records.
type RecordQueue struct {
	items    chan []*models.PropertyRecord
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.PropertyRecord) error
}

// NewRecordQueue creates a new record queue with the specified buffer size.
func NewRecordQueue(bufferSize int, logger *logrus.Logger) *RecordQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &RecordQueue{
		items:    make(chan []*models.PropertyRecord, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.PropertyRecord) error, 0),
	}
}

// Push adds a batch of records to the queue.
func (q *RecordQueue) Push(batch []*models.PropertyRecord) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch.
func (q *RecordQueue) Subscribe(handler func([]*models.PropertyRecord) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue.
func (q *RecordQueue) Start() {
	go q.process()
}

func (q *RecordQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

func (q *RecordQueue) processBatch(batch []*models.PropertyRecord) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new items from being added.
func (q *RecordQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	return nil
}

// Len returns the current number of batches in the queue.
func (q *RecordQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *RecordQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
