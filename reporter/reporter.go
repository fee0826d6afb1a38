// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package reporter drains a metrics registry on a fixed schedule: every tick
// it snapshots the aggregates and hands the samples to the configured sinks.
// Sinks run on the scheduler's goroutines, never on the instrumented
// runtime's.
package reporter

import (
	"context"
	"sync"
	"time"

	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/tochemey/actormetrics/collector"
	"github.com/tochemey/actormetrics/internal/errorschain"
	"github.com/tochemey/actormetrics/internal/validation"
	"github.com/tochemey/actormetrics/log"
	"github.com/tochemey/actormetrics/metric"
)

// DefaultInterval is the snapshot cadence when none is configured.
const DefaultInterval = 10 * time.Second

// DefaultStopTimeout bounds how long Stop waits for an in-flight export.
const DefaultStopTimeout = 3 * time.Second

// Sink receives periodic snapshots of the registry aggregates.
type Sink interface {
	// Export hands over one snapshot taken at the given instant. The samples
	// slice is shared between the sinks of a tick and must not be mutated.
	Export(ctx context.Context, at time.Time, samples []metric.Sample) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, at time.Time, samples []metric.Sample) error

// enforce compilation error
var _ Sink = SinkFunc(nil)

// Export implements Sink.
func (f SinkFunc) Export(ctx context.Context, at time.Time, samples []metric.Sample) error {
	return f(ctx, at, samples)
}

// Reporter snapshots a registry at a fixed interval and exports the samples
// to every configured sink. Empty snapshots are skipped.
type Reporter struct {
	mu          sync.Mutex
	registry    *collector.Registry
	sinks       []Sink
	interval    time.Duration
	stopTimeout time.Duration
	logger      log.Logger
	scheduler   quartz.Scheduler
	started     *atomic.Bool
}

// New creates a reporter draining the given registry. At least one sink is
// required.
func New(registry *collector.Registry, opts ...Option) (*Reporter, error) {
	reporter := &Reporter{
		registry:    registry,
		interval:    DefaultInterval,
		stopTimeout: DefaultStopTimeout,
		logger:      log.DefaultLogger,
		started:     atomic.NewBool(false),
	}

	// apply the options
	for _, opt := range opts {
		opt.Apply(reporter)
	}

	if err := reporter.validate(); err != nil {
		return nil, err
	}

	// create an instance of quartz scheduler with logger off
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	reporter.scheduler = quartzScheduler
	return reporter, nil
}

// Start begins the export schedule. The first export fires one interval after
// Start; use Flush for an immediate one. It is idempotent.
func (x *Reporter) Start(ctx context.Context) error {
	if !x.started.CompareAndSwap(false, true) {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	x.scheduler.Start(ctx)

	exportJob := job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			err := x.export(ctx)
			return err == nil, err
		},
	)

	detail := quartz.NewJobDetail(exportJob, quartz.NewJobKey("metrics-export"))
	if err := x.scheduler.ScheduleJob(detail, quartz.NewSimpleTrigger(x.interval)); err != nil {
		x.scheduler.Stop()
		x.started.Store(false)
		return err
	}

	x.logger.Infof("metrics reporter started with interval=(%s)", x.interval)
	return nil
}

// Stop halts the export schedule and waits up to the stop timeout for an
// in-flight export to finish. It is idempotent.
func (x *Reporter) Stop(ctx context.Context) error {
	if !x.started.CompareAndSwap(true, false) {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	_ = x.scheduler.Clear()
	x.scheduler.Stop()

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.scheduler.Wait(ctx)

	x.logger.Info("metrics reporter stopped")
	return nil
}

// Started reports whether the schedule is running.
func (x *Reporter) Started() bool {
	return x.started.Load()
}

// Flush snapshots the registry and exports the samples right away, outside
// the schedule. It works whether or not the reporter is started.
func (x *Reporter) Flush(ctx context.Context) error {
	return x.export(ctx)
}

func (x *Reporter) export(ctx context.Context) error {
	at := time.Now()
	samples := x.registry.Snapshot()
	if len(samples) == 0 {
		return nil
	}

	chain := errorschain.New(errorschain.ReturnAll())
	for _, sink := range x.sinks {
		chain.AddErrorFn(func() error {
			return sink.Export(ctx, at, samples)
		})
	}

	if err := chain.Error(); err != nil {
		x.logger.Errorf("metrics export failed: %v", err)
		return err
	}
	return nil
}

func (x *Reporter) validate() error {
	return validation.
		New(validation.FailFast()).
		AddAssertion(x.registry != nil, "registry is required").
		AddAssertion(len(x.sinks) > 0, "at least one sink is required").
		AddAssertion(x.interval > 0, "interval must be greater than 0").
		AddAssertion(x.stopTimeout > 0, "stopTimeout must be greater than 0").
		Validate()
}
