package worker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"blog_backend/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Lease lets one replica claim a scheduling period.
type Lease interface {
	TryAcquire(ctx context.Context) (bool, error)
}

// KeepAliveWorker periodically requests the service's own public URL so
// hosting platforms that idle out quiet instances keep it running.
// Failures are logged and never propagated.
type KeepAliveWorker struct {
	url      string
	schedule string
	lease    Lease
	client   *http.Client
}

// NewKeepAliveWorker builds a worker; lease may be nil.
func NewKeepAliveWorker(url, schedule string, lease Lease) *KeepAliveWorker {
	return &KeepAliveWorker{
		url:      url,
		schedule: schedule,
		lease:    lease,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Start runs the schedule until ctx is cancelled.
func (w *KeepAliveWorker) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddJob(w.schedule, w); err != nil {
		return fmt.Errorf("invalid keep-alive schedule %q: %w", w.schedule, err)
	}
	c.Start()
	logger.Infof("Keep-alive worker started, pinging %s on %q", w.url, w.schedule)

	<-ctx.Done()
	logger.Info("Keep-alive worker stopping...")
	<-c.Stop().Done()
	return nil
}

// Run implements cron.Job.
func (w *KeepAliveWorker) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if w.lease != nil {
		ok, err := w.lease.TryAcquire(ctx)
		switch {
		case err != nil:
			logger.Warningf("keep-alive lease unavailable, pinging anyway: %v", err)
		case !ok:
			logger.Debugf("keep-alive ping skipped, another instance holds the lease")
			return
		}
	}

	if err := w.Ping(ctx); err != nil {
		logger.Errorf("Error pinging the server: %v", err)
	}
}

// Ping issues a single GET against the configured URL.
func (w *KeepAliveWorker) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Warningf("Ping to %s answered %s", w.url, resp.Status)
	}
	logger.Infof("Ping sent to the server at: %s", time.Now().Format(time.RFC1123))
	return nil
}

// LeaseTTL returns a lease lifetime a few seconds shorter than the gap
// between two consecutive runs of schedule.
func LeaseTTL(schedule string, now time.Time) (time.Duration, error) {
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return 0, err
	}
	first := sched.Next(now)
	gap := sched.Next(first).Sub(first)
	ttl := gap - 5*time.Second
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl, nil
}
