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

package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/nats-io/nats.go"

	"github.com/tochemey/actormetrics/internal/validation"
)

// natsSample is the wire form of one metric update on the NATS subject.
type natsSample struct {
	Kind    string            `json:"kind"`
	Name    string            `json:"name"`
	Tags    map[string]string `json:"tags,omitempty"`
	Value   int64             `json:"value,omitempty"`
	Elapsed int64             `json:"elapsed_nanos,omitempty"`
	At      int64             `json:"at"`
}

// NATS is a Backend that publishes every update as a JSON message on one
// NATS subject. Publishing is fire-and-forget; downstream consumers own
// durability.
type NATS struct {
	conn    *nats.Conn
	subject string
}

// enforce compilation error
var _ Backend = (*NATS)(nil)

// NewNATS connects to the given NATS server and returns a backend publishing
// on subject. The connection is retried with exponential backoff before
// giving up.
func NewNATS(ctx context.Context, server, subject string) (*NATS, error) {
	if err := validation.
		New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("server", server)).
		AddValidator(validation.NewEmptyStringValidator("subject", subject)).
		Validate(); err != nil {
		return nil, err
	}

	opts := nats.GetDefaultOptions()
	opts.Url = server
	opts.Name = "actormetrics"
	opts.ReconnectWait = 2 * time.Second
	opts.MaxReconnect = -1

	var connection *nats.Conn

	const maxRetries = 5
	retrier := retry.NewRetrier(maxRetries, 100*time.Millisecond, opts.ReconnectWait)
	err := retrier.RunContext(ctx, func(context.Context) error {
		var err error
		connection, err = opts.Connect()
		return err
	})
	if err != nil {
		return nil, err
	}

	return &NATS{
		conn:    connection,
		subject: subject,
	}, nil
}

// RecordCounter implements Backend.
func (x *NATS) RecordCounter(name string, tags map[string]string, value int64) error {
	return x.publish(natsSample{
		Kind:  "counter",
		Name:  name,
		Tags:  tags,
		Value: value,
		At:    time.Now().UnixNano(),
	})
}

// RecordGauge implements Backend.
func (x *NATS) RecordGauge(name string, tags map[string]string, value int64) error {
	return x.publish(natsSample{
		Kind:  "gauge",
		Name:  name,
		Tags:  tags,
		Value: value,
		At:    time.Now().UnixNano(),
	})
}

// RecordTimer implements Backend.
func (x *NATS) RecordTimer(name string, tags map[string]string, elapsed time.Duration) error {
	return x.publish(natsSample{
		Kind:    "timer",
		Name:    name,
		Tags:    tags,
		Elapsed: elapsed.Nanoseconds(),
		At:      time.Now().UnixNano(),
	})
}

// Close implements Backend.
func (x *NATS) Close() error {
	defer x.conn.Close()
	return x.conn.Flush()
}

func (x *NATS) publish(sample natsSample) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	return x.conn.Publish(x.subject, payload)
}
