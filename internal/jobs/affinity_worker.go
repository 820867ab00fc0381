package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/internal/service"
	"github.com/havenhq/haven/api/pkg/metrics"
)

// Matcher rescores one group against the known events.
type Matcher interface {
	MatchGroupToEvents(ctx context.Context, groupID string) ([]*model.MatchRecord, error)
}

// Worker defaults
const (
	DefaultQueueSize    = 256
	DefaultRetryMax     = 3
	DefaultRetryBackoff = 500 * time.Millisecond
	DefaultRunTimeout   = 30 * time.Second
)

// AffinityWorker refreshes event matches for groups whose profile changed.
//
// Group IDs arrive through a bounded queue; a full queue drops the refresh
// rather than blocking the join path. Failed refreshes retry a bounded
// number of times with a fixed backoff, except when the group no longer
// resolves.
type AffinityWorker struct {
	matcher      Matcher
	queue        chan string
	retryMax     int
	retryBackoff time.Duration
	runTimeout   time.Duration
	logger       *slog.Logger

	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

// AffinityWorkerConfig holds affinity worker dependencies
type AffinityWorkerConfig struct {
	Matcher      Matcher
	QueueSize    int
	RetryMax     int
	RetryBackoff time.Duration
	RunTimeout   time.Duration
	Logger       *slog.Logger
}

// NewAffinityWorker creates a new affinity worker
func NewAffinityWorker(cfg AffinityWorkerConfig) *AffinityWorker {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	retryMax := cfg.RetryMax
	if retryMax <= 0 {
		retryMax = DefaultRetryMax
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = DefaultRetryBackoff
	}
	runTimeout := cfg.RunTimeout
	if runTimeout <= 0 {
		runTimeout = DefaultRunTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AffinityWorker{
		matcher:      cfg.Matcher,
		queue:        make(chan string, queueSize),
		retryMax:     retryMax,
		retryBackoff: retryBackoff,
		runTimeout:   runTimeout,
		logger:       logger,
		stopCh:       make(chan struct{}),
	}
}

// Start begins consuming the refresh queue
func (w *AffinityWorker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run()
	w.logger.Info("affinity worker started", "queue_size", cap(w.queue))
}

// Stop gracefully stops the worker. Queued refreshes that have not started
// are dropped.
func (w *AffinityWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	w.wg.Wait()

	if pending := len(w.queue); pending > 0 {
		w.logger.Warn("affinity worker stopped with pending refreshes", "pending", pending)
	} else {
		w.logger.Info("affinity worker stopped")
	}
}

// IsRunning returns whether the worker is consuming the queue
func (w *AffinityWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Enqueue hands a group ID to the worker. It never blocks; the return value
// reports whether the queue accepted the ID.
func (w *AffinityWorker) Enqueue(groupID string) bool {
	select {
	case w.queue <- groupID:
		metrics.UpdateQueueDepth(len(w.queue))
		return true
	default:
		return false
	}
}

// run is the main loop
func (w *AffinityWorker) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return
		case groupID := <-w.queue:
			metrics.UpdateQueueDepth(len(w.queue))
			w.process(groupID)
		}
	}
}

// process refreshes one group with bounded retries.
func (w *AffinityWorker) process(groupID string) {
	for attempt := 0; ; attempt++ {
		err := w.RunOnce(context.Background(), groupID)
		if err == nil {
			return
		}
		if errors.Is(err, service.ErrGroupNotFound) {
			// The group vanished between enqueue and refresh; retrying
			// cannot help.
			w.logger.Warn("skipping refresh for unknown group", "group_id", groupID)
			return
		}
		if attempt >= w.retryMax {
			w.logger.Error("affinity refresh failed",
				"group_id", groupID,
				"attempts", attempt+1,
				"error", err,
			)
			return
		}

		metrics.RecordWorkerRetry()
		w.logger.Warn("retrying affinity refresh",
			"group_id", groupID,
			"attempt", attempt+1,
			"error", err,
		)
		select {
		case <-w.stopCh:
			return
		case <-time.After(w.retryBackoff):
		}
	}
}

// RunOnce refreshes a single group immediately (for testing or manual
// trigger).
func (w *AffinityWorker) RunOnce(ctx context.Context, groupID string) error {
	ctx, cancel := context.WithTimeout(ctx, w.runTimeout)
	defer cancel()

	_, err := w.matcher.MatchGroupToEvents(ctx, groupID)
	return err
}
