// Package worker implements the buffered worker pool that re-warms memoized
// external reads in the background:
// - Backpressure handling via load shedding
// - Periodic scheduling of registered refresh jobs
// - Graceful shutdown that drains queued jobs

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Prometheus metrics
var (
	jobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "draftkit_refresh_jobs_enqueued_total",
		Help: "Total number of refresh jobs enqueued",
	})

	jobsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "draftkit_refresh_jobs_processed_total",
		Help: "Total number of refresh jobs that completed",
	})

	jobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "draftkit_refresh_jobs_failed_total",
		Help: "Total number of refresh jobs that returned an error",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "draftkit_refresh_queue_depth",
		Help: "Current depth of the refresh queue",
	})

	jobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "draftkit_refresh_job_duration_seconds",
		Help:    "Duration of refresh jobs",
		Buckets: prometheus.DefBuckets,
	})

	jobsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "draftkit_refresh_jobs_load_shed_total",
		Help: "Total number of refresh jobs dropped because the queue was full",
	})
)

// Job is one refresh task.
type Job struct {
	Name      string
	Run       func(ctx context.Context) error
	Timestamp time.Time
}

// PoolConfig configures the refresh pool
type PoolConfig struct {
	WorkerCount int
	QueueSize   int
	// Interval between scheduling rounds. Zero disables the scheduler;
	// jobs can still be enqueued directly.
	Interval   time.Duration
	JobTimeout time.Duration
	Schedule   *Schedule
	Logger     *zap.Logger
}

// Pool runs refresh jobs on a fixed set of workers
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new refresh pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Schedule == nil {
		cfg.Schedule = NewSchedule(0)
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines and the scheduler
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()
	if p.config.Interval > 0 {
		go p.schedule()
	}

	p.logger.Infow("Refresh pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"interval", p.config.Interval,
	)
}

// Stop cancels in-flight jobs, drains the queue and waits for workers
func (p *Pool) Stop() {
	p.logger.Info("Stopping refresh pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Refresh pool stopped")
}

// Enqueue adds a job without blocking. It returns false when the queue is
// full or the pool is stopped.
func (p *Pool) Enqueue(job Job) (ok bool) {
	if job.Timestamp.IsZero() {
		job.Timestamp = time.Now()
	}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue job (pool stopped)", "job", job.Name, "error", r)
			ok = false
		}
	}()

	if p.ctx != nil && p.ctx.Err() != nil {
		jobsLoadShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- job:
		jobsEnqueued.Inc()
		return true
	default:
		p.logger.Warnw("Refresh queue full, dropping job", "job", job.Name)
		jobsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// Schedule returns the job schedule the pool draws from.
func (p *Pool) Schedule() *Schedule {
	return p.config.Schedule
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobQueue {
		if p.ctx.Err() != nil {
			// Drain without running after shutdown.
			continue
		}
		p.run(id, job)
	}
}

func (p *Pool) run(id int, job Job) {
	ctx, cancel := context.WithTimeout(p.ctx, p.config.JobTimeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	jobDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		jobsFailed.Inc()
		p.logger.Warnw("Refresh job failed",
			"worker", id,
			"job", job.Name,
			"queued", start.Sub(job.Timestamp),
			"error", err,
		)
		return
	}
	jobsProcessed.Inc()
	p.logger.Debugw("Refresh job done", "worker", id, "job", job.Name, "duration", time.Since(start))
}

func (p *Pool) schedule() {
	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	p.enqueueScheduled()

	for {
		select {
		case <-ticker.C:
			p.enqueueScheduled()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) enqueueScheduled() int {
	n := 0
	for _, job := range p.config.Schedule.Jobs() {
		if p.Enqueue(job) {
			n++
		}
	}
	return n
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
