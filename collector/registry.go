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

package collector

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	"github.com/tochemey/actormetrics/backend"
	"github.com/tochemey/actormetrics/breaker"
	"github.com/tochemey/actormetrics/event"
	"github.com/tochemey/actormetrics/filter"
	"github.com/tochemey/actormetrics/log"
	"github.com/tochemey/actormetrics/metric"
)

var (
	// ErrRegistryStarted is returned when a collector is registered after the
	// registry subscribed to the event streams.
	ErrRegistryStarted = errors.New("registry already started")
	// ErrDuplicateCollector is returned when a collector name is already taken.
	ErrDuplicateCollector = errors.New("collector name already registered")
)

// Registry subscribes to the instrumentation event streams and fans every
// admitted event into the built-in collectors and the backend. Events run
// through it synchronously on the publishing goroutine: each one costs an
// enabled check, one filter evaluation and the collector update, and a
// backend push guarded by a circuit breaker so a slow or failing backend
// sheds updates instead of stalling the runtime.
//
// Lifecycle and envelope events are filtered by their actor path. Mailbox and
// processing events only carry a behavior class and are matched against the
// synthetic path /<class>.
type Registry struct {
	config *Config
	logger log.Logger
	filter *filter.Filter
	sink   backend.Backend
	cb     *breaker.CircuitBreaker

	lifecycle  *LifecycleCollector
	mailbox    *MailboxCollector
	processing *ProcessingCollector
	envelopes  *EnvelopeCollector

	extras     []Collector
	extraNames goset.Set[string]

	enabled *atomic.Bool
	started *atomic.Bool
	dropped *atomic.Int64

	unsubscribe []func()
	mu          sync.Mutex
}

// enforce compilation error
var (
	_ event.LifecycleListener  = (*Registry)(nil)
	_ event.EnvelopeListener   = (*Registry)(nil)
	_ event.MailboxListener    = (*Registry)(nil)
	_ event.ProcessingListener = (*Registry)(nil)
)

// NewRegistry creates a registry from the given config. A nil config gets the
// defaults. The registry does not receive events until Start is called.
func NewRegistry(config *Config) (*Registry, error) {
	if config == nil {
		config = NewConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	pathFilter, err := filter.New(config.Includes(), config.Excludes())
	if err != nil {
		return nil, err
	}

	registry := &Registry{
		config:     config,
		logger:     config.Logger(),
		filter:     pathFilter,
		sink:       config.Backend(),
		cb:         breaker.NewCircuitBreaker(config.BreakerOptions()...),
		lifecycle:  NewLifecycleCollector(),
		mailbox:    NewMailboxCollector(config.BufferCapacity()),
		processing: NewProcessingCollector(config.BufferCapacity()),
		envelopes:  NewEnvelopeCollector(),
		extraNames: goset.NewSet[string](),
		enabled:    atomic.NewBool(config.Enabled()),
		started:    atomic.NewBool(false),
		dropped:    atomic.NewInt64(0),
	}

	for _, builtin := range registry.builtins() {
		registry.extraNames.Add(builtin.Name())
	}

	return registry, nil
}

// Start subscribes the registry to the four instrumentation event streams.
// It is idempotent; a second call is a no-op.
func (r *Registry) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return nil
	}

	event.SetLogger(r.logger)

	lifecycleID := event.Lifecycle().Register(r)
	envelopeID := event.Envelopes().Register(r)
	mailboxID := event.Mailboxes().Register(r)
	processingID := event.Processing().Register(r)

	r.mu.Lock()
	r.unsubscribe = []func(){
		func() { event.Lifecycle().Unregister(lifecycleID) },
		func() { event.Envelopes().Unregister(envelopeID) },
		func() { event.Mailboxes().Unregister(mailboxID) },
		func() { event.Processing().Unregister(processingID) },
	}
	r.mu.Unlock()

	r.logger.Infof("metrics registry=(%s) started", r.config.Name())
	return nil
}

// Stop unsubscribes the registry from the event streams and closes the
// backend. Aggregates survive for post-mortem reads. It is idempotent.
func (r *Registry) Stop(ctx context.Context) error {
	if !r.started.CompareAndSwap(true, false) {
		return nil
	}

	r.mu.Lock()
	for _, unsubscribe := range r.unsubscribe {
		unsubscribe()
	}
	r.unsubscribe = nil
	r.mu.Unlock()

	r.logger.Infof("metrics registry=(%s) stopped", r.config.Name())
	return r.sink.Close()
}

// Started reports whether the registry is subscribed to the event streams.
func (r *Registry) Started() bool {
	return r.started.Load()
}

// Enable resumes recording.
func (r *Registry) Enable() {
	r.enabled.Store(true)
}

// Disable pauses recording. Events received while disabled are discarded
// without touching the aggregates or the backend.
func (r *Registry) Disable() {
	r.enabled.Store(false)
}

// Enabled reports whether the registry is recording.
func (r *Registry) Enabled() bool {
	return r.enabled.Load()
}

// Config returns the registry configuration.
func (r *Registry) Config() *Config {
	return r.config
}

// Backend returns the backend samples are pushed to.
func (r *Registry) Backend() backend.Backend {
	return r.sink
}

// OnActorCreated implements event.LifecycleListener.
func (r *Registry) OnActorCreated(created event.ActorCreated) {
	if !r.enabled.Load() {
		return
	}

	ref := created.Ref()
	if !r.filter.Match(ref.Path()) {
		return
	}

	class := ref.Class()
	active := r.lifecycle.RecordCreated(class)
	tags := r.mergeTags(map[string]string{TagActorClass: class})
	r.push(func() error {
		if err := r.sink.RecordCounter(MetricActorsCreated, tags, 1); err != nil {
			return err
		}
		return r.sink.RecordGauge(MetricActorsActive, tags, active)
	})
}

// OnActorTerminated implements event.LifecycleListener.
func (r *Registry) OnActorTerminated(terminated event.ActorTerminated) {
	if !r.enabled.Load() {
		return
	}

	ref := terminated.Ref()
	if !r.filter.Match(ref.Path()) {
		return
	}

	class := ref.Class()
	active := r.lifecycle.RecordTerminated(class)
	tags := r.mergeTags(map[string]string{TagActorClass: class})
	r.push(func() error {
		if err := r.sink.RecordCounter(MetricActorsTerminated, tags, 1); err != nil {
			return err
		}
		return r.sink.RecordGauge(MetricActorsActive, tags, active)
	})
}

// OnCellReplaced implements event.LifecycleListener. An identity migration is
// neither a birth nor a death: the population did not change and nothing is
// recorded.
func (r *Registry) OnCellReplaced(event.CellReplaced) {
}

// OnEnvelopeCreated implements event.EnvelopeListener.
func (r *Registry) OnEnvelopeCreated(created event.EnvelopeCreated) {
	if !r.enabled.Load() {
		return
	}

	envelope := created.Envelope()
	if !r.filter.Match(envelope.Path()) {
		return
	}

	messageType := envelope.MessageType()
	r.envelopes.RecordCreated(messageType, created.At())
	tags := r.mergeTags(map[string]string{TagMessageType: messageType})
	r.push(func() error {
		return r.sink.RecordCounter(MetricEnvelopesCreated, tags, 1)
	})
}

// OnEnvelopeSent implements event.EnvelopeListener.
func (r *Registry) OnEnvelopeSent(sent event.EnvelopeSent) {
	if !r.enabled.Load() {
		return
	}

	envelope := sent.Envelope()
	if !r.filter.Match(envelope.Path()) {
		return
	}

	messageType := envelope.MessageType()
	r.envelopes.RecordSent(messageType, sent.At())
	tags := r.mergeTags(map[string]string{TagMessageType: messageType})
	r.push(func() error {
		return r.sink.RecordCounter(MetricEnvelopesSent, tags, 1)
	})
}

// OnMailboxEnqueued implements event.MailboxListener.
func (r *Registry) OnMailboxEnqueued(enqueued event.MailboxEnqueued) {
	if !r.enabled.Load() {
		return
	}

	class := enqueued.Class()
	if !r.filter.Match("/" + class) {
		return
	}

	depth := enqueued.Depth()
	r.mailbox.RecordEnqueued(class, depth)
	tags := r.mergeTags(map[string]string{TagActorClass: class})
	r.push(func() error {
		return r.sink.RecordGauge(MetricMailboxDepth, tags, depth)
	})
}

// OnMailboxDequeued implements event.MailboxListener.
func (r *Registry) OnMailboxDequeued(dequeued event.MailboxDequeued) {
	if !r.enabled.Load() {
		return
	}

	class := dequeued.Class()
	if !r.filter.Match("/" + class) {
		return
	}

	depth := dequeued.Depth()
	wait, measured := r.mailbox.RecordDequeued(class, depth)
	tags := r.mergeTags(map[string]string{TagActorClass: class})
	r.push(func() error {
		if err := r.sink.RecordGauge(MetricMailboxDepth, tags, depth); err != nil {
			return err
		}
		if !measured {
			return nil
		}
		return r.sink.RecordTimer(MetricMailboxWait, tags, wait)
	})
}

// OnProcessingStarted implements event.ProcessingListener.
func (r *Registry) OnProcessingStarted(started event.ProcessingStarted) {
	if !r.enabled.Load() {
		return
	}

	class := started.Class()
	if !r.filter.Match("/" + class) {
		return
	}

	r.processing.RecordStarted(class, started.MessageType(), started.At())
	inflight, _ := r.processing.InFlight(class)
	tags := r.mergeTags(map[string]string{TagActorClass: class})
	r.push(func() error {
		return r.sink.RecordGauge(MetricProcessingInFlight, tags, inflight)
	})
}

// OnProcessingFinished implements event.ProcessingListener.
func (r *Registry) OnProcessingFinished(finished event.ProcessingFinished) {
	if !r.enabled.Load() {
		return
	}

	class := finished.Class()
	if !r.filter.Match("/" + class) {
		return
	}

	elapsed, measured := r.processing.RecordFinished(class, finished.MessageType(), finished.Elapsed())
	inflight, _ := r.processing.InFlight(class)
	classTags := r.mergeTags(map[string]string{TagActorClass: class})
	durationTags := r.mergeTags(map[string]string{
		TagActorClass:  class,
		TagMessageType: finished.MessageType(),
	})
	r.push(func() error {
		if err := r.sink.RecordGauge(MetricProcessingInFlight, classTags, inflight); err != nil {
			return err
		}
		if !measured {
			return nil
		}
		return r.sink.RecordTimer(MetricProcessingDuration, durationTags, elapsed)
	})
}

// RegisterCollector adds a custom collector to the registry's snapshots and
// resets. It must be called before Start and each collector name may only be
// taken once.
func (r *Registry) RegisterCollector(collector Collector) error {
	if r.started.Load() {
		return ErrRegistryStarted
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.extraNames.Add(collector.Name()) {
		return ErrDuplicateCollector
	}
	r.extras = append(r.extras, collector)
	return nil
}

// Snapshot returns the current aggregates of every collector as a flat sample
// list with the static tags applied, sorted by name then key. When backend
// pushes have been dropped the list carries one extra counter sample keyed
// "backend" under the dropped-samples metric.
func (r *Registry) Snapshot() []metric.Sample {
	var samples []metric.Sample
	collect := func(collector Collector) {
		collector.Each(func(sample metric.Sample) {
			sample.Tags = r.mergeTags(sample.Tags)
			samples = append(samples, sample)
		})
	}

	for _, builtin := range r.builtins() {
		collect(builtin)
	}
	for _, extra := range r.extraCollectors() {
		collect(extra)
	}

	if dropped := r.dropped.Load(); dropped > 0 {
		samples = append(samples, metric.Sample{
			Kind:  metric.KindCounter,
			Name:  MetricSamplesDropped,
			Key:   "backend",
			Tags:  r.mergeTags(nil),
			Value: dropped,
		})
	}

	slices.SortStableFunc(samples, func(a, b metric.Sample) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return samples
}

// Reset clears every aggregate, including registered custom collectors and
// the dropped-update counter.
func (r *Registry) Reset() {
	for _, builtin := range r.builtins() {
		builtin.Reset()
	}
	for _, extra := range r.extraCollectors() {
		extra.Reset()
	}
	r.dropped.Store(0)
}

// Lifecycle returns the built-in lifecycle collector.
func (r *Registry) Lifecycle() *LifecycleCollector {
	return r.lifecycle
}

// Mailbox returns the built-in mailbox collector.
func (r *Registry) Mailbox() *MailboxCollector {
	return r.mailbox
}

// Processing returns the built-in processing collector.
func (r *Registry) Processing() *ProcessingCollector {
	return r.processing
}

// Envelopes returns the built-in envelope collector.
func (r *Registry) Envelopes() *EnvelopeCollector {
	return r.envelopes
}

// Collector returns the collector registered under name, built-in or custom.
func (r *Registry) Collector(name string) (Collector, bool) {
	for _, builtin := range r.builtins() {
		if builtin.Name() == name {
			return builtin, true
		}
	}
	for _, extra := range r.extraCollectors() {
		if extra.Name() == name {
			return extra, true
		}
	}
	return nil, false
}

// Dropped returns how many updates failed to reach the backend.
func (r *Registry) Dropped() int64 {
	return r.dropped.Load()
}

// push hands one update to the backend through the circuit breaker. A failed
// or short-circuited update is counted and shed; the publishing goroutine
// never sees the failure.
func (r *Registry) push(record func() error) {
	if err := r.cb.Execute(record); err != nil {
		r.dropped.Inc()
		if !errors.Is(err, breaker.ErrOpen) {
			r.logger.Debugf("backend push failed: %v", err)
		}
	}
}

func (r *Registry) mergeTags(tags map[string]string) map[string]string {
	merged := r.config.StaticTags()
	maps.Copy(merged, tags)
	return merged
}

func (r *Registry) builtins() []Collector {
	return []Collector{r.lifecycle, r.mailbox, r.processing, r.envelopes}
}

func (r *Registry) extraCollectors() []Collector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.extras)
}
