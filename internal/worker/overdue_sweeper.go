package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// BillingFacade exposes the subset of application functionality required by the worker.
type BillingFacade interface {
	MarkOverdue(ctx context.Context, limit int) ([]model.InvoiceWithOwner, error)
	NotifyOverdue(ctx context.Context, inv model.InvoiceWithOwner)
}

// notifyTimeout bounds a single notification so shutdown cannot hang on a slow store.
const notifyTimeout = 10 * time.Second

// OverdueSweeper periodically flags past-due invoices and notifies owners concurrently.
type OverdueSweeper struct {
	facade       BillingFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.InvoiceWithOwner
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOverdueSweeper constructs the sweeper and its notification worker pool.
func NewOverdueSweeper(facade BillingFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OverdueSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &OverdueSweeper{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.InvoiceWithOwner, batchSize*workers),
	}
}

// Start launches background processing.
func (s *OverdueSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Workers outlive the dispatcher's context so invoices already marked overdue
	// still get their notice during shutdown. They exit once jobs is closed.
	baseCtx := context.WithoutCancel(ctx)
	runCtx, cancel := context.WithCancel(baseCtx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(baseCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop halts sweeping and waits for queued notifications to be delivered.
func (s *OverdueSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *OverdueSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep drains past-due invoices batch by batch until a short batch shows nothing is left.
func (s *OverdueSweeper) sweep(ctx context.Context) {
	for {
		marked, err := s.facade.MarkOverdue(ctx, s.batchSize)
		if err != nil {
			s.logger.Error("mark overdue invoices failed", slog.String("error", err.Error()))
			return
		}
		for i, inv := range marked {
			select {
			case s.jobs <- inv:
			case <-ctx.Done():
				// These rows are already overdue in the store; a later sweep will not return them.
				for _, rest := range marked[i:] {
					s.jobs <- rest
				}
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
		if len(marked) < s.batchSize {
			return
		}
	}
}

func (s *OverdueSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for inv := range s.jobs {
		notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
		s.facade.NotifyOverdue(notifyCtx, inv)
		cancel()
	}
}
